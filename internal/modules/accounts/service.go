package accounts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/events"
)

// Service owns prop account lifecycle rules: creation stamping, the
// status state machine, and append-only payout logging.
type Service struct {
	repo   *AccountRepository
	events *events.Manager
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates a new account service
func NewService(repo *AccountRepository, ev *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: ev,
		log:    log.With().Str("service", "accounts").Logger(),
		now:    time.Now,
	}
}

// Create validates and persists a new account. An account created
// directly as Funded gets DateFunded stamped with its purchase date.
func (s *Service) Create(account PropAccount) (PropAccount, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.DateAdded.IsZero() {
		account.DateAdded = s.now()
	}

	if err := account.Validate(); err != nil {
		return PropAccount{}, err
	}

	if account.Status == StatusFunded && account.DateFunded == nil {
		funded := account.DateAdded
		account.DateFunded = &funded
	}

	account.Payouts = []Payout{}
	account.RecomputePayoutAggregates()

	if err := s.repo.Create(account); err != nil {
		return PropAccount{}, err
	}

	s.events.Emit("accounts", events.AccountCreated, map[string]interface{}{
		"id":     account.ID,
		"firm":   account.FirmName,
		"status": string(account.Status),
	})

	return account, nil
}

// ChangeStatus applies a status transition with its date side effects
func (s *Service) ChangeStatus(id string, newStatus AccountStatus) (*PropAccount, error) {
	account, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", id)
	}

	previous := account.Status
	if err := account.Transition(newStatus, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(*account); err != nil {
		return nil, err
	}

	s.events.Emit("accounts", events.AccountStatusChanged, map[string]interface{}{
		"id":   id,
		"from": string(previous),
		"to":   string(newStatus),
	})

	return account, nil
}

// AddPayout appends a payout and refreshes the account's aggregates
func (s *Service) AddPayout(id string, amount float64, date time.Time, note string) (*PropAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payout amount must be positive")
	}

	account, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", id)
	}

	if date.IsZero() {
		date = s.now()
	}

	payout := Payout{
		ID:     uuid.NewString(),
		Amount: amount,
		Date:   date,
		Note:   note,
	}

	if err := s.repo.AddPayout(id, payout); err != nil {
		return nil, err
	}

	account.Payouts = append(account.Payouts, payout)
	account.RecomputePayoutAggregates()

	s.events.Emit("accounts", events.PayoutLogged, map[string]interface{}{
		"account_id": id,
		"amount":     amount,
	})

	return account, nil
}
