package service

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/database"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db         *sql.DB
	instanceID string
}

// NewSystemService creates a new SystemService. Each process gets a unique
// instance ID so multiple deployments can be told apart in version output.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db:         db,
		instanceID: uuid.New().String(),
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo describes the running application and its schema version.
type VersionInfo struct {
	AppVersion    string `json:"appVersion"`
	SchemaVersion int64  `json:"schemaVersion"`
	InstanceID    string `json:"instanceId"`
}

// CheckVersion returns the application version, the applied migration
// version and the process instance ID.
func (s *SystemService) CheckVersion() (VersionInfo, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return VersionInfo{}, err
	}

	return VersionInfo{
		AppVersion:    version.Version,
		SchemaVersion: schemaVersion,
		InstanceID:    s.instanceID,
	}, nil
}
