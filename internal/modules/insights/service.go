package insights

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yizinity/journal/internal/events"
	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

// Degraded responses. AI commentary is best-effort: every failure maps
// to one of these fixed strings and never reaches the computation path.
const (
	msgNoKey          = "API key missing. Set GEMINI_API_KEY to enable AI features."
	msgNoKeyChat      = "API key missing. Set GEMINI_API_KEY to use the mentor chat."
	msgReviewFailed   = "Unable to analyze trade at this time due to a processing error."
	msgReviewAdvice   = "Please check your API key or try again later."
	msgStrategyFailed = "Could not generate strategy analysis."
	msgChatFailed     = "Mentor connection interrupted. Please try again."
)

// TradeReview is the structured coaching response for a single trade
type TradeReview struct {
	Analysis string  `json:"analysis"`
	Rating   float64 `json:"rating"`
	Advice   string  `json:"advice"`
}

// TradeSource supplies trades ordered most recent first
type TradeSource interface {
	List() ([]journal.Trade, error)
}

// AccountSource supplies all accounts with payouts loaded
type AccountSource interface {
	List() ([]accounts.PropAccount, error)
}

// Service produces AI commentary on trades and strategy. A nil
// generator means no API key was configured; every operation then
// returns its placeholder response.
type Service struct {
	gen      Generator
	trades   TradeSource
	accounts AccountSource
	events   *events.Manager
	log      zerolog.Logger
}

// NewService creates a new insights service. gen may be nil.
func NewService(gen Generator, trades TradeSource, accts AccountSource, ev *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		gen:      gen,
		trades:   trades,
		accounts: accts,
		events:   ev,
		log:      log.With().Str("service", "insights").Logger(),
	}
}

// ReviewTrade returns structured coaching for one trade
func (s *Service) ReviewTrade(ctx context.Context, trade journal.Trade) TradeReview {
	if s.gen == nil {
		return TradeReview{Analysis: msgNoKey, Rating: 0, Advice: "Configuration Error"}
	}

	text, err := s.gen.GenerateJSON(ctx, buildTradeReviewPrompt(trade), tradeReviewSchema)
	if err != nil {
		s.log.Error().Err(err).Str("trade_id", trade.ID).Msg("Trade review failed")
		return TradeReview{Analysis: msgReviewFailed, Rating: 0, Advice: msgReviewAdvice}
	}

	// Strip code fences in case the model wraps the JSON anyway
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var review TradeReview
	if err := json.Unmarshal([]byte(text), &review); err != nil {
		s.log.Error().Err(err).Str("trade_id", trade.ID).Msg("Trade review response was not valid JSON")
		return TradeReview{Analysis: msgReviewFailed, Rating: 0, Advice: msgReviewAdvice}
	}

	s.events.Emit("insights", events.InsightGenerated, map[string]interface{}{
		"kind":     "trade_review",
		"trade_id": trade.ID,
	})

	return review
}

// AnalyzeStrategy returns a two-paragraph executive summary of the
// given trades, grouped by setup.
func (s *Service) AnalyzeStrategy(ctx context.Context, trades []journal.Trade, rangeLabel string) string {
	if s.gen == nil {
		return msgNoKey
	}

	text, err := s.gen.GenerateText(ctx, buildStrategyPrompt(trades, rangeLabel))
	if err != nil {
		s.log.Error().Err(err).Msg("Strategy analysis failed")
		return msgStrategyFailed
	}

	s.events.Emit("insights", events.InsightGenerated, map[string]interface{}{
		"kind":  "strategy",
		"range": rangeLabel,
	})

	return cleanText(text)
}

// MentorChat answers a mentor-chat message with the trader's recent
// trades and accounts as context.
func (s *Service) MentorChat(ctx context.Context, history []ChatMessage, message string) string {
	if s.gen == nil {
		return msgNoKeyChat
	}

	trades, err := s.trades.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load trades for mentor context")
		trades = nil
	}
	accts, err := s.accounts.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load accounts for mentor context")
		accts = nil
	}

	reply, err := s.gen.Chat(ctx, buildMentorSystemInstruction(trades, accts), history, message)
	if err != nil {
		s.log.Error().Err(err).Msg("Mentor chat failed")
		return msgChatFailed
	}

	s.events.Emit("insights", events.InsightGenerated, map[string]interface{}{
		"kind": "mentor_chat",
	})

	return cleanText(reply)
}
