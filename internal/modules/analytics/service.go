package analytics

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/events"
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

// TradeSource supplies the full trade set
type TradeSource interface {
	List() ([]journal.Trade, error)
}

// AccountSource supplies all accounts with payouts loaded
type AccountSource interface {
	List() ([]accounts.PropAccount, error)
}

type cacheEntry struct {
	revision uint64
	value    interface{}
}

// Service computes derived analytics over the journal. Results are
// memoized per (data revision, filter key); any write event bumps the
// revision so stale entries simply stop matching.
type Service struct {
	trades   TradeSource
	accounts AccountSource
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	revision uint64
	cache    map[string]cacheEntry
}

// NewService creates the analytics service and subscribes it to write
// events for cache invalidation.
func NewService(trades TradeSource, accts AccountSource, ev *events.Manager, log zerolog.Logger) *Service {
	s := &Service{
		trades:   trades,
		accounts: accts,
		log:      log.With().Str("service", "analytics").Logger(),
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
	}

	ev.Subscribe(func(e events.Event) {
		switch e.Type {
		case events.InsightGenerated, events.ErrorOccurred:
			// Read-side events don't change journal data.
		default:
			s.invalidate()
		}
	})

	return s
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.revision++
	if len(s.cache) > 0 {
		s.cache = make(map[string]cacheEntry)
	}
	s.mu.Unlock()
}

// memoized returns the cached value for key at the current revision,
// or computes and stores one.
func (s *Service) memoized(key string, compute func() (interface{}, error)) (interface{}, error) {
	s.mu.Lock()
	rev := s.revision
	if entry, ok := s.cache[key]; ok && entry.revision == rev {
		s.mu.Unlock()
		return entry.value, nil
	}
	s.mu.Unlock()

	value, err := compute()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.revision == rev {
		s.cache[key] = cacheEntry{revision: rev, value: value}
	}
	s.mu.Unlock()

	return value, nil
}

// Metrics computes dashboard metrics for the given range
func (s *Service) Metrics(rng DashboardRange) (Metrics, error) {
	value, err := s.memoized(fmt.Sprintf("metrics:%s", rng), func() (interface{}, error) {
		all, err := s.trades.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load trades: %w", err)
		}
		filtered := FilterTrades(all, rng, s.now())
		return ComputeMetrics(all, filtered), nil
	})
	if err != nil {
		return Metrics{}, err
	}
	return value.(Metrics), nil
}

// Expenses computes the expense accrual summary for the given period
func (s *Service) Expenses(period Period) (ExpenseSummary, error) {
	value, err := s.memoized(fmt.Sprintf("expenses:%s", period), func() (interface{}, error) {
		accts, err := s.accounts.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load accounts: %w", err)
		}
		return ComputeExpenseAccrual(accts, period, s.now()), nil
	})
	if err != nil {
		return ExpenseSummary{}, err
	}
	return value.(ExpenseSummary), nil
}

// Evaluations computes funding progress for all evaluation accounts
func (s *Service) Evaluations() ([]EvaluationProgress, error) {
	value, err := s.memoized("evaluations", func() (interface{}, error) {
		accts, err := s.accounts.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load accounts: %w", err)
		}
		trades, err := s.trades.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load trades: %w", err)
		}
		return ComputeEvaluationProgress(accts, trades), nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]EvaluationProgress), nil
}
