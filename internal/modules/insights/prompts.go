package insights

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/yizinity/journal/internal/modules/accounts"
	"github.com/yizinity/journal/internal/modules/journal"
)

// tradeReviewSchema constrains the review response to pure JSON
var tradeReviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {Type: genai.TypeString},
		"rating":   {Type: genai.TypeNumber},
		"advice":   {Type: genai.TypeString},
	},
	Required: []string{"analysis", "rating", "advice"},
}

func buildTradeReviewPrompt(trade journal.Trade) string {
	mistakes := strings.Join(trade.Mistakes, ", ")
	if mistakes == "" {
		mistakes = "None"
	}
	notes := strings.ReplaceAll(trade.Notes, `"`, "'")

	return fmt.Sprintf(`Act as a world-class professional trading psychologist and technical analyst.
Analyze this specific trade execution data and provide coaching.

Trade Details:
- Symbol: %s
- Direction: %s
- Entry Price: %s
- Exit Price: %s
- Result: %s (P&L: %.2f)
- Setup: %s
- Tagged Mistakes: %s
- Trader Notes: "%s"

Return a pure JSON object (no markdown) with:
1. 'analysis' (string): Concise critique of execution and risk management.
2. 'rating' (number): 1-10 score of execution quality.
3. 'advice' (string): Single actionable improvement tip.`,
		trade.Symbol, trade.Direction, formatPrice(trade.EntryPrice), formatPrice(trade.ExitPrice),
		trade.Outcome, trade.Pnl, trade.Setup, mistakes, notes)
}

func buildStrategyPrompt(trades []journal.Trade, rangeLabel string) string {
	type setupAgg struct {
		pnl   float64
		wins  int
		total int
	}

	perSetup := make(map[string]*setupAgg)
	names := make([]string, 0)
	totalPnl := 0.0

	for _, t := range trades {
		name := t.Setup
		if name == "" {
			name = "Unknown"
		}
		agg, ok := perSetup[name]
		if !ok {
			agg = &setupAgg{}
			perSetup[name] = agg
			names = append(names, name)
		}
		agg.pnl += t.Pnl
		agg.total++
		if t.Pnl > 0 {
			agg.wins++
		}
		totalPnl += t.Pnl
	}
	sort.Strings(names)

	var summary strings.Builder
	for _, name := range names {
		agg := perSetup[name]
		fmt.Fprintf(&summary, "- %s: $%.0f Net (%d/%d Wins)\n", name, agg.pnl, agg.wins, agg.total)
	}

	return fmt.Sprintf(`You are an elite Trading Performance Analyst.

Timeframe: %s
Total Net P&L: $%.2f

Strategy Breakdown:
%s
Task:
Write a concise, 2-paragraph executive summary for the trader.
1. Paragraph 1: Analyze what is working best. Identify the highest performing setup.
2. Paragraph 2: Identify the "leak" (worst performing setup) and give specific advice on whether to size down or stop trading it.

Tone: Professional, Direct, Analytical. No formatting/markdown.`,
		rangeLabel, totalPnl, summary.String())
}

// mentorContextTrades caps how many recent trades feed the chat prompt
const mentorContextTrades = 30

func buildMentorSystemInstruction(trades []journal.Trade, accts []accounts.PropAccount) string {
	var tradeContext strings.Builder
	for i, t := range trades {
		if i >= mentorContextTrades {
			break
		}
		fmt.Fprintf(&tradeContext, "- %s: %s %s (%s) P&L: %.2f, Setup: %s, Mistakes: %s\n",
			t.EntryDate.Format("2006-01-02"), t.Symbol, t.Direction, t.Outcome, t.Pnl,
			t.Setup, strings.Join(t.Mistakes, ", "))
	}

	var accountContext strings.Builder
	for _, a := range accts {
		roi := 0.0
		if a.Cost > 0 {
			roi = (a.TotalPayouts - a.Cost) / a.Cost * 100
		}
		fmt.Fprintf(&accountContext, "- %s (%s): Payouts: %.2f, ROI: %.1f%%\n",
			a.FirmName, a.Status, a.TotalPayouts, roi)
	}

	return fmt.Sprintf(`You are a strict but helpful professional trading mentor specializing in price-action and smart-money concepts.

Current Trader Data (Context):
RECENT TRADES:
%s
FUNDED ACCOUNTS:
%s
Guidelines:
1. Answer the user's question directly.
2. Use the context provided above to give specific examples from their actual trading.
3. Be concise and professional.
4. Focus on psychology and risk management.
5. DO NOT use bolding (asterisks) in your response. Keep it plain text.`,
		tradeContext.String(), accountContext.String())
}

func formatPrice(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *p)
}

// cleanText strips markdown bolding the model sometimes adds anyway
func cleanText(text string) string {
	return strings.ReplaceAll(text, "*", "")
}
