package insights

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ChatMessage is one turn of the mentor conversation
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Generator produces model completions. The production implementation
// talks to Gemini; tests substitute a fake.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Chat(ctx context.Context, systemInstruction string, history []ChatMessage, message string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func (g *geminiGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func (g *geminiGenerator) Chat(ctx context.Context, systemInstruction string, history []ChatMessage, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}

	chat, err := g.client.Chats.Create(ctx, g.model, config, contents)
	if err != nil {
		return "", err
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
