// Package repository provides data access for the investment and
// sale_history tables. The sale history is append-only: rows are only ever
// inserted, never updated, and the aggregated view of a lot is derived from
// the full history on every fetch.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/model"
)

// InvestmentRepository provides data access methods for investment lots and
// their sale history.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// fetchQuery joins each lot with its latest sale date, cumulative quantity
// sold and average sale price. Remaining shares are always recalculated from
// the cumulative total, not read from the latest history row.
const fetchQuery = `
	WITH latest_sales AS (
		SELECT
			sh.investment_id,
			sh.sale_date,
			ROW_NUMBER() OVER (PARTITION BY sh.investment_id ORDER BY sh.sale_date DESC) AS rn
		FROM sale_history sh
	),
	aggregated_sales AS (
		SELECT
			investment_id,
			SUM(quantity_sold) AS total_quantity_sold,
			ROUND(AVG(sale_price), 2) AS avg_sale_price
		FROM sale_history
		GROUP BY investment_id
	)
	SELECT
		i.id,
		i.ticker,
		i.purchase_date,
		i.initial_amount,
		i.initial_unit_price,
		i.transaction_fee,
		i.sold_share_status,
		(i.initial_amount - COALESCE(ag.total_quantity_sold, 0)) AS remaining_shares,
		ls.sale_date AS last_sale_date,
		COALESCE(ag.total_quantity_sold, 0),
		COALESCE(ag.avg_sale_price, 0)
	FROM investment i
	LEFT JOIN latest_sales ls ON i.id = ls.investment_id AND ls.rn = 1
	LEFT JOIN aggregated_sales ag ON i.id = ag.investment_id
`

// InsertInvestment creates a new lot row together with its zero-valued seed
// history row (remaining shares equal to the initial amount, no sale date).
// Both inserts happen in one transaction; the new lot ID is returned.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv model.Investment) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, `
		INSERT INTO investment (
			ticker, purchase_date, initial_amount, initial_unit_price, transaction_fee, sold_share_status
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		inv.Ticker,
		inv.PurchaseDate.Format("2006-01-02"),
		inv.InitialAmount,
		inv.InitialUnitPrice,
		inv.TransactionFee,
		inv.SoldShareStatus,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert investment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted investment id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sale_history (investment_id, remaining_shares, sale_date, quantity_sold, sale_price)
		VALUES (?, ?, NULL, 0, 0)
	`, id, inv.InitialAmount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert seed sale history row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit investment insert: %w", err)
	}

	return id, nil
}

// FetchInvestments returns all lots joined with their aggregated sale
// history, ordered by ID.
func (r *InvestmentRepository) FetchInvestments(ctx context.Context) ([]model.Investment, error) {
	rows, err := r.db.QueryContext(ctx, fetchQuery+" ORDER BY i.id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// FetchInvestment returns a single lot by ID joined with its aggregated
// sale history. Returns apperrors.ErrInvestmentNotFound if no row exists.
func (r *InvestmentRepository) FetchInvestment(ctx context.Context, id int64) (model.Investment, error) {
	rows, err := r.db.QueryContext(ctx, fetchQuery+" WHERE i.id = ?", id)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Investment{}, fmt.Errorf("error iterating investment table: %w", err)
		}
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}

	return scanInvestment(rows)
}

// RecordSale updates the lot's sold-share status and appends one new sale
// history row. Prior history rows are never touched.
func (r *InvestmentRepository) RecordSale(ctx context.Context, id int64, status string, remainingShares int64, saleDate string, quantitySold int64, salePrice float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, `UPDATE investment SET sold_share_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update sold share status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sale_history (investment_id, remaining_shares, sale_date, quantity_sold, sale_price)
		VALUES (?, ?, ?, ?, ?)
	`, id, remainingShares, saleDate, quantitySold, salePrice)
	if err != nil {
		return fmt.Errorf("failed to append sale history row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	return nil
}

// FetchSaleHistory returns the full append-only history for one lot,
// oldest row first. The zero-valued seed row is included.
func (r *InvestmentRepository) FetchSaleHistory(ctx context.Context, investmentID int64) ([]model.SaleEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, investment_id, remaining_shares, sale_date, quantity_sold, sale_price
		FROM sale_history
		WHERE investment_id = ?
		ORDER BY id ASC
	`, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale_history table: %w", err)
	}
	defer rows.Close()

	events := []model.SaleEvent{}
	for rows.Next() {
		var e model.SaleEvent
		var saleDateStr sql.NullString

		err := rows.Scan(&e.ID, &e.InvestmentID, &e.RemainingShares, &saleDateStr, &e.QuantitySold, &e.SalePrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale_history results: %w", err)
		}

		if saleDateStr.Valid {
			saleDate, err := ParseTime(saleDateStr.String)
			if err != nil {
				return nil, err
			}
			e.SaleDate = &saleDate
		}

		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale_history table: %w", err)
	}

	return events, nil
}

// DistinctTickers returns the set of tickers held across all lots.
func (r *InvestmentRepository) DistinctTickers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT ticker FROM investment ORDER BY ticker ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct tickers: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, ticker)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickers: %w", err)
	}

	return tickers, nil
}

// TruncateAll deletes every row in both tables and resets the autoincrement
// counters so fresh inserts start at ID 1 again.
func (r *InvestmentRepository) TruncateAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"sale_history", "investment"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit truncate: %w", err)
	}

	return nil
}

// scanInvestment scans one row of fetchQuery into a model.Investment.
func scanInvestment(rows *sql.Rows) (model.Investment, error) {
	var inv model.Investment
	var purchaseDateStr string
	var lastSaleDateStr sql.NullString

	err := rows.Scan(
		&inv.ID,
		&inv.Ticker,
		&purchaseDateStr,
		&inv.InitialAmount,
		&inv.InitialUnitPrice,
		&inv.TransactionFee,
		&inv.SoldShareStatus,
		&inv.RemainingShares,
		&lastSaleDateStr,
		&inv.QuantitySold,
		&inv.SalePrice,
	)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to scan investment results: %w", err)
	}

	inv.PurchaseDate, err = ParseTime(purchaseDateStr)
	if err != nil {
		return model.Investment{}, err
	}

	if lastSaleDateStr.Valid {
		lastSaleDate, err := ParseTime(lastSaleDateStr.String)
		if err != nil {
			return model.Investment{}, err
		}
		inv.LastSaleDate = &lastSaleDate
	}

	return inv, nil
}
