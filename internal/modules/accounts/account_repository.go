package accounts

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// AccountRepository handles prop account database operations
type AccountRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB, log zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log.With().Str("repo", "account").Logger(),
	}
}

const accountColumns = `id, firm_name, account_size, cost, activation_fee,
	is_subscription, monthly_fee, target_profit, status,
	date_added, date_funded, date_ended, certificate, created_at`

// Create inserts a new account record
func (r *AccountRepository) Create(account PropAccount) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		account.ID,
		account.FirmName,
		account.AccountSize,
		account.Cost,
		nullFloat64Ptr(account.ActivationFee),
		boolToInt(account.IsSubscription),
		nullFloat64Ptr(account.MonthlyFee),
		nullFloat64Ptr(account.TargetProfit),
		string(account.Status),
		account.DateAdded.UTC().Format(time.RFC3339),
		nullTimePtr(account.DateFunded),
		nullTimePtr(account.DateEnded),
		nullString(account.Certificate),
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.log.Info().
		Str("id", account.ID).
		Str("firm", account.FirmName).
		Str("status", string(account.Status)).
		Msg("Account created")

	return nil
}

// Update replaces an account record (payouts are append-only and
// managed separately)
func (r *AccountRepository) Update(account PropAccount) error {
	query := `
		UPDATE accounts SET
			firm_name = ?, account_size = ?, cost = ?, activation_fee = ?,
			is_subscription = ?, monthly_fee = ?, target_profit = ?,
			status = ?, date_added = ?, date_funded = ?, date_ended = ?,
			certificate = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		account.FirmName,
		account.AccountSize,
		account.Cost,
		nullFloat64Ptr(account.ActivationFee),
		boolToInt(account.IsSubscription),
		nullFloat64Ptr(account.MonthlyFee),
		nullFloat64Ptr(account.TargetProfit),
		string(account.Status),
		account.DateAdded.UTC().Format(time.RFC3339),
		nullTimePtr(account.DateFunded),
		nullTimePtr(account.DateEnded),
		nullString(account.Certificate),
		account.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("account not found: %s", account.ID)
	}

	return nil
}

// Delete removes an account and, via cascade, its payouts
func (r *AccountRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("account not found: %s", id)
	}

	r.log.Info().Str("id", id).Msg("Account deleted")
	return nil
}

// Get retrieves an account by id with its payout history, returning
// nil when not found
func (r *AccountRepository) Get(id string) (*PropAccount, error) {
	row := r.db.QueryRow("SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	payouts, err := r.payoutsFor(id)
	if err != nil {
		return nil, err
	}
	account.Payouts = payouts
	account.RecomputePayoutAggregates()

	return &account, nil
}

// List retrieves all accounts with payout histories, oldest purchase
// first. Malformed rows are skipped; no data yields an empty slice.
func (r *AccountRepository) List() ([]PropAccount, error) {
	rows, err := r.db.Query("SELECT " + accountColumns + " FROM accounts ORDER BY date_added ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	result := []PropAccount{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Skipping malformed account row")
			continue
		}
		result = append(result, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	payouts, err := r.allPayouts()
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Payouts = payouts[result[i].ID]
		if result[i].Payouts == nil {
			result[i].Payouts = []Payout{}
		}
		result[i].RecomputePayoutAggregates()
	}

	return result, nil
}

// Sizes returns a map of account id to account size, used by the
// trade copier
func (r *AccountRepository) Sizes() (map[string]float64, error) {
	rows, err := r.db.Query("SELECT id, account_size FROM accounts")
	if err != nil {
		return nil, fmt.Errorf("failed to query account sizes: %w", err)
	}
	defer rows.Close()

	sizes := make(map[string]float64)
	for rows.Next() {
		var id string
		var size float64
		if err := rows.Scan(&id, &size); err != nil {
			return nil, fmt.Errorf("failed to scan account size: %w", err)
		}
		sizes[id] = size
	}

	return sizes, rows.Err()
}

// AddPayout appends a payout record to an account
func (r *AccountRepository) AddPayout(accountID string, payout Payout) error {
	query := `INSERT INTO payouts (id, account_id, amount, date, note) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		payout.ID,
		accountID,
		payout.Amount,
		payout.Date.UTC().Format(time.RFC3339),
		payout.Note,
	)

	if err != nil {
		return fmt.Errorf("failed to add payout: %w", err)
	}

	r.log.Info().
		Str("account_id", accountID).
		Float64("amount", payout.Amount).
		Msg("Payout logged")

	return nil
}

// payoutsFor loads one account's payouts ordered by date
func (r *AccountRepository) payoutsFor(accountID string) ([]Payout, error) {
	rows, err := r.db.Query(
		"SELECT id, amount, date, note FROM payouts WHERE account_id = ? ORDER BY date ASC",
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payouts: %w", err)
	}
	defer rows.Close()

	payouts := []Payout{}
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			r.log.Warn().Err(err).Msg("Skipping malformed payout row")
			continue
		}
		payouts = append(payouts, payout)
	}

	return payouts, rows.Err()
}

// allPayouts loads every payout grouped by account id
func (r *AccountRepository) allPayouts() (map[string][]Payout, error) {
	rows, err := r.db.Query("SELECT account_id, id, amount, date, note FROM payouts ORDER BY date ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query payouts: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]Payout)
	for rows.Next() {
		var accountID string
		var p Payout
		var date string
		if err := rows.Scan(&accountID, &p.ID, &p.Amount, &date, &p.Note); err != nil {
			r.log.Warn().Err(err).Msg("Skipping malformed payout row")
			continue
		}
		parsed, err := time.Parse(time.RFC3339, date)
		if err != nil {
			r.log.Warn().Err(err).Msg("Skipping payout with bad date")
			continue
		}
		p.Date = parsed
		grouped[accountID] = append(grouped[accountID], p)
	}

	return grouped, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (PropAccount, error) {
	var (
		a                           PropAccount
		activationFee, monthlyFee   sql.NullFloat64
		targetProfit                sql.NullFloat64
		isSubscription              int
		status                      string
		dateAdded, createdAt        string
		dateFunded, dateEnded, cert sql.NullString
	)

	err := row.Scan(
		&a.ID, &a.FirmName, &a.AccountSize, &a.Cost, &activationFee,
		&isSubscription, &monthlyFee, &targetProfit, &status,
		&dateAdded, &dateFunded, &dateEnded, &cert, &createdAt,
	)
	if err != nil {
		return PropAccount{}, err
	}

	a.ActivationFee = float64Ptr(activationFee)
	a.MonthlyFee = float64Ptr(monthlyFee)
	a.TargetProfit = float64Ptr(targetProfit)
	a.IsSubscription = isSubscription != 0
	a.Status = AccountStatus(status)
	a.Certificate = cert.String

	if a.DateAdded, err = time.Parse(time.RFC3339, dateAdded); err != nil {
		return PropAccount{}, fmt.Errorf("bad date_added: %w", err)
	}
	if a.DateFunded, err = timePtr(dateFunded); err != nil {
		return PropAccount{}, fmt.Errorf("bad date_funded: %w", err)
	}
	if a.DateEnded, err = timePtr(dateEnded); err != nil {
		return PropAccount{}, fmt.Errorf("bad date_ended: %w", err)
	}
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = &created
	}

	return a, nil
}

func scanPayout(rows *sql.Rows) (Payout, error) {
	var p Payout
	var date string
	if err := rows.Scan(&p.ID, &p.Amount, &date, &p.Note); err != nil {
		return Payout{}, err
	}

	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return Payout{}, fmt.Errorf("bad payout date: %w", err)
	}
	p.Date = parsed

	return p, nil
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

func nullTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func float64Ptr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func timePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
