package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/response"
)

// timeTokenTTL bounds how old a time token may be. Tokens are minted per
// request by the caller, so a short window is enough to stop replays.
const timeTokenTTL = 5 * time.Minute

// APIKeyMiddleware protects internal endpoints with a static API key plus a
// short-lived fernet time token. The key comes from INTERNAL_API_KEY and the
// fernet signing key from FERNET_KEY; both are read per request so tests can
// rotate them.
//
// Required headers:
//   - X-API-Key: must match INTERNAL_API_KEY
//   - X-Time-Token: fernet token minted within the TTL window
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API not configured", "")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		keys, err := fernet.DecodeKeys(os.Getenv("FERNET_KEY"))
		if err != nil {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API not configured", "")
			return
		}

		if msg := fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, keys); msg == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken mints a fernet time token with the key from FERNET_KEY.
// Callers send it in the X-Time-Token header; it expires after timeTokenTTL.
func GenerateTimeToken(payload string) (string, error) {
	keys, err := fernet.DecodeKeys(os.Getenv("FERNET_KEY"))
	if err != nil {
		return "", fmt.Errorf("failed to decode fernet key: %w", err)
	}

	token, err := fernet.EncryptAndSign([]byte(payload), keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign time token: %w", err)
	}

	return string(token), nil
}
