package analytics

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/yizinity/journal/internal/events"
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

type fakeTradeSource struct {
	trades []journal.Trade
	calls  int
}

func (f *fakeTradeSource) List() ([]journal.Trade, error) {
	f.calls++
	return f.trades, nil
}

type fakeAccountSource struct {
	accounts []accounts.PropAccount
}

func (f *fakeAccountSource) List() ([]accounts.PropAccount, error) {
	return f.accounts, nil
}

func TestService_Metrics_Memoized(t *testing.T) {
	trades := &fakeTradeSource{trades: []journal.Trade{{Pnl: 100}}}
	ev := events.NewManager(zerolog.Nop())
	svc := NewService(trades, &fakeAccountSource{}, ev, zerolog.Nop())

	first, err := svc.Metrics(RangeAll)
	assert.NoError(t, err)
	second, err := svc.Metrics(RangeAll)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, trades.calls)
}

func TestService_Metrics_InvalidatedByWriteEvents(t *testing.T) {
	trades := &fakeTradeSource{trades: []journal.Trade{{Pnl: 100}}}
	ev := events.NewManager(zerolog.Nop())
	svc := NewService(trades, &fakeAccountSource{}, ev, zerolog.Nop())

	m, err := svc.Metrics(RangeAll)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, m.NetPnl)

	trades.trades = append(trades.trades, journal.Trade{Pnl: 50})
	ev.Emit("journal", events.TradeLogged, nil)

	m, err = svc.Metrics(RangeAll)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, m.NetPnl)
	assert.Equal(t, 2, trades.calls)
}

func TestService_Metrics_ReadEventsKeepCache(t *testing.T) {
	trades := &fakeTradeSource{trades: []journal.Trade{{Pnl: 100}}}
	ev := events.NewManager(zerolog.Nop())
	svc := NewService(trades, &fakeAccountSource{}, ev, zerolog.Nop())

	_, err := svc.Metrics(RangeAll)
	assert.NoError(t, err)

	ev.Emit("insights", events.InsightGenerated, nil)

	_, err = svc.Metrics(RangeAll)
	assert.NoError(t, err)
	assert.Equal(t, 1, trades.calls)
}

func TestService_SeparateRangesCacheSeparately(t *testing.T) {
	trades := &fakeTradeSource{trades: []journal.Trade{{Pnl: 100}}}
	ev := events.NewManager(zerolog.Nop())
	svc := NewService(trades, &fakeAccountSource{}, ev, zerolog.Nop())

	_, err := svc.Metrics(RangeAll)
	assert.NoError(t, err)
	_, err = svc.Metrics(RangeToday)
	assert.NoError(t, err)

	assert.Equal(t, 2, trades.calls)
}
