package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// TradeRepository handles trade database operations
type TradeRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

const tradeColumns = `id, account_id, symbol, direction, session, status, outcome,
	entry_date, exit_date, entry_price, exit_price, size, stop_loss,
	pnl, commission, risk_percentage, r_multiple, setup, mistakes,
	notes, screenshot, copy_group_id, created_at`

// Create inserts a new trade record
func (r *TradeRepository) Create(trade Trade) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO trades (` + tradeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	mistakes, err := json.Marshal(trade.Mistakes)
	if err != nil {
		return fmt.Errorf("failed to encode mistakes: %w", err)
	}

	_, err = r.db.Exec(query,
		trade.ID,
		nullString(trade.AccountID),
		trade.Symbol,
		string(trade.Direction),
		string(trade.Session),
		string(trade.Status),
		string(trade.Outcome),
		trade.EntryDate.UTC().Format(time.RFC3339),
		trade.ExitDate.UTC().Format(time.RFC3339),
		nullFloat64Ptr(trade.EntryPrice),
		nullFloat64Ptr(trade.ExitPrice),
		nullFloat64Ptr(trade.Size),
		nullFloat64Ptr(trade.StopLoss),
		trade.Pnl,
		trade.Commission,
		nullFloat64Ptr(trade.RiskPercentage),
		nullFloat64Ptr(trade.RMultiple),
		trade.Setup,
		string(mistakes),
		trade.Notes,
		nullString(trade.Screenshot),
		nullString(trade.CopyGroupID),
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	r.log.Info().
		Str("id", trade.ID).
		Str("symbol", trade.Symbol).
		Float64("pnl", trade.Pnl).
		Msg("Trade created")

	return nil
}

// Update replaces a trade record wholesale
func (r *TradeRepository) Update(trade Trade) error {
	mistakes, err := json.Marshal(trade.Mistakes)
	if err != nil {
		return fmt.Errorf("failed to encode mistakes: %w", err)
	}

	query := `
		UPDATE trades SET
			account_id = ?, symbol = ?, direction = ?, session = ?,
			status = ?, outcome = ?, entry_date = ?, exit_date = ?,
			entry_price = ?, exit_price = ?, size = ?, stop_loss = ?,
			pnl = ?, commission = ?, risk_percentage = ?, r_multiple = ?,
			setup = ?, mistakes = ?, notes = ?, screenshot = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		nullString(trade.AccountID),
		trade.Symbol,
		string(trade.Direction),
		string(trade.Session),
		string(trade.Status),
		string(trade.Outcome),
		trade.EntryDate.UTC().Format(time.RFC3339),
		trade.ExitDate.UTC().Format(time.RFC3339),
		nullFloat64Ptr(trade.EntryPrice),
		nullFloat64Ptr(trade.ExitPrice),
		nullFloat64Ptr(trade.Size),
		nullFloat64Ptr(trade.StopLoss),
		trade.Pnl,
		trade.Commission,
		nullFloat64Ptr(trade.RiskPercentage),
		nullFloat64Ptr(trade.RMultiple),
		trade.Setup,
		string(mistakes),
		trade.Notes,
		nullString(trade.Screenshot),
		trade.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("trade not found: %s", trade.ID)
	}

	return nil
}

// Delete removes a trade by id
func (r *TradeRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("trade not found: %s", id)
	}

	r.log.Info().Str("id", id).Msg("Trade deleted")
	return nil
}

// Get retrieves a trade by id, returning nil when not found
func (r *TradeRepository) Get(id string) (*Trade, error) {
	row := r.db.QueryRow("SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)

	trade, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	return &trade, nil
}

// List retrieves all trades, most recent exit first. Malformed rows are
// skipped rather than failing the whole read; a missing table or empty
// result yields an empty slice.
func (r *TradeRepository) List() ([]Trade, error) {
	return r.query("SELECT " + tradeColumns + " FROM trades ORDER BY exit_date DESC")
}

// ListByAccount retrieves all trades linked to a prop account
func (r *TradeRepository) ListByAccount(accountID string) ([]Trade, error) {
	return r.query("SELECT "+tradeColumns+" FROM trades WHERE account_id = ? ORDER BY exit_date DESC", accountID)
}

func (r *TradeRepository) query(query string, args ...interface{}) ([]Trade, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := []Trade{}
	for rows.Next() {
		trade, err := scanTradeFromRows(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Skipping malformed trade row")
			continue
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (Trade, error) {
	var (
		t                                   Trade
		accountID, screenshot, copyGroup    sql.NullString
		entryDate, exitDate, createdAt      string
		entryPrice, exitPrice, size, stop   sql.NullFloat64
		riskPct, rMultiple                  sql.NullFloat64
		direction, session, status, outcome string
		mistakes                            string
	)

	err := row.Scan(
		&t.ID, &accountID, &t.Symbol, &direction, &session, &status, &outcome,
		&entryDate, &exitDate, &entryPrice, &exitPrice, &size, &stop,
		&t.Pnl, &t.Commission, &riskPct, &rMultiple, &t.Setup, &mistakes,
		&t.Notes, &screenshot, &copyGroup, &createdAt,
	)
	if err != nil {
		return Trade{}, err
	}

	t.AccountID = accountID.String
	t.Screenshot = screenshot.String
	t.CopyGroupID = copyGroup.String
	t.Direction = Direction(direction)
	t.Session = Session(session)
	t.Status = TradeStatus(status)
	t.Outcome = Outcome(outcome)
	t.EntryPrice = float64Ptr(entryPrice)
	t.ExitPrice = float64Ptr(exitPrice)
	t.Size = float64Ptr(size)
	t.StopLoss = float64Ptr(stop)
	t.RiskPercentage = float64Ptr(riskPct)
	t.RMultiple = float64Ptr(rMultiple)

	if t.EntryDate, err = time.Parse(time.RFC3339, entryDate); err != nil {
		return Trade{}, fmt.Errorf("bad entry_date: %w", err)
	}
	if t.ExitDate, err = time.Parse(time.RFC3339, exitDate); err != nil {
		return Trade{}, fmt.Errorf("bad exit_date: %w", err)
	}
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = &created
	}

	// Corrupt tag payloads degrade to no tags instead of dropping the trade
	if err := json.Unmarshal([]byte(mistakes), &t.Mistakes); err != nil {
		t.Mistakes = []string{}
	}
	if t.Mistakes == nil {
		t.Mistakes = []string{}
	}

	return t, nil
}

func scanTradeFromRows(rows *sql.Rows) (Trade, error) {
	return scanTrade(rows)
}

// Helpers for nullable columns

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat64Ptr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func float64Ptr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
