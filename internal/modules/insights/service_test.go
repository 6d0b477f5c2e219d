package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/yizinity/journal/internal/events"
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

type fakeGenerator struct {
	textResponse string
	jsonResponse string
	chatResponse string
	err          error

	lastPrompt string
	lastSystem string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.textResponse, f.err
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.lastPrompt = prompt
	return f.jsonResponse, f.err
}

func (f *fakeGenerator) Chat(ctx context.Context, system string, history []ChatMessage, message string) (string, error) {
	f.lastSystem = system
	return f.chatResponse, f.err
}

type staticTrades struct{ trades []journal.Trade }

func (s *staticTrades) List() ([]journal.Trade, error) { return s.trades, nil }

type staticAccounts struct{ accounts []accounts.PropAccount }

func (s *staticAccounts) List() ([]accounts.PropAccount, error) { return s.accounts, nil }

func newTestService(gen Generator) *Service {
	return NewService(gen, &staticTrades{}, &staticAccounts{}, events.NewManager(zerolog.Nop()), zerolog.Nop())
}

func TestReviewTrade_ParsesJSON(t *testing.T) {
	gen := &fakeGenerator{jsonResponse: `{"analysis":"Solid entry.","rating":8,"advice":"Hold longer."}`}
	svc := newTestService(gen)

	review := svc.ReviewTrade(context.Background(), journal.Trade{ID: "t1", Symbol: "NQ"})

	assert.Equal(t, "Solid entry.", review.Analysis)
	assert.Equal(t, 8.0, review.Rating)
	assert.Equal(t, "Hold longer.", review.Advice)
}

func TestReviewTrade_StripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{jsonResponse: "```json\n{\"analysis\":\"ok\",\"rating\":5,\"advice\":\"tip\"}\n```"}
	svc := newTestService(gen)

	review := svc.ReviewTrade(context.Background(), journal.Trade{ID: "t1"})

	assert.Equal(t, 5.0, review.Rating)
}

func TestReviewTrade_DegradesOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network down")}
	svc := newTestService(gen)

	review := svc.ReviewTrade(context.Background(), journal.Trade{ID: "t1"})

	assert.Equal(t, msgReviewFailed, review.Analysis)
	assert.Equal(t, 0.0, review.Rating)
}

func TestReviewTrade_DegradesWithoutGenerator(t *testing.T) {
	svc := newTestService(nil)

	review := svc.ReviewTrade(context.Background(), journal.Trade{ID: "t1"})

	assert.Equal(t, msgNoKey, review.Analysis)
}

func TestAnalyzeStrategy_StripsAsterisks(t *testing.T) {
	gen := &fakeGenerator{textResponse: "Your **FVG** setup is *strong*."}
	svc := newTestService(gen)

	summary := svc.AnalyzeStrategy(context.Background(), []journal.Trade{{Setup: "FVG", Pnl: 100}}, "ALL")

	assert.Equal(t, "Your FVG setup is strong.", summary)
}

func TestAnalyzeStrategy_PromptCarriesAggregates(t *testing.T) {
	gen := &fakeGenerator{textResponse: "fine"}
	svc := newTestService(gen)

	trades := []journal.Trade{
		{Setup: "FVG", Pnl: 50},
		{Setup: "FVG", Pnl: -20},
		{Setup: "", Pnl: 10},
	}
	svc.AnalyzeStrategy(context.Background(), trades, "Last 30 Days")

	assert.Contains(t, gen.lastPrompt, "Last 30 Days")
	assert.Contains(t, gen.lastPrompt, "FVG: $30 Net (1/2 Wins)")
	assert.Contains(t, gen.lastPrompt, "Unknown: $10 Net (1/1 Wins)")
}

func TestAnalyzeStrategy_DegradesOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(gen)

	summary := svc.AnalyzeStrategy(context.Background(), nil, "ALL")

	assert.Equal(t, msgStrategyFailed, summary)
}

func TestMentorChat_ContextIncludesTraderData(t *testing.T) {
	gen := &fakeGenerator{chatResponse: "Focus on risk."}
	trades := &staticTrades{trades: []journal.Trade{{Symbol: "NQ", Setup: "FVG", Pnl: 120}}}
	accts := &staticAccounts{accounts: []accounts.PropAccount{{FirmName: "Apex", Status: accounts.StatusFunded, Cost: 100, TotalPayouts: 400}}}
	svc := NewService(gen, trades, accts, events.NewManager(zerolog.Nop()), zerolog.Nop())

	reply := svc.MentorChat(context.Background(), nil, "How am I doing?")

	assert.Equal(t, "Focus on risk.", reply)
	assert.Contains(t, gen.lastSystem, "NQ")
	assert.Contains(t, gen.lastSystem, "Apex")
	assert.Contains(t, gen.lastSystem, "ROI: 300.0%")
}

func TestMentorChat_Degrades(t *testing.T) {
	svc := newTestService(nil)
	assert.Equal(t, msgNoKeyChat, svc.MentorChat(context.Background(), nil, "hello"))

	svc = newTestService(&fakeGenerator{err: errors.New("timeout")})
	assert.Equal(t, msgChatFailed, svc.MentorChat(context.Background(), nil, "hello"))
}
