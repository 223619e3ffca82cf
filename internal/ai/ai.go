/*
Package ai summarises ESPI/EBI report text with the Gemini API.
*/
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// maxInputRunes bounds the report text sent to the model.
const maxInputRunes = 30000

type AIAnalysis struct {
	Category string   `json:"category"`
	Summary  []string `json:"summary"`
}

// Summarizer produces short bullet summaries of report bodies.
type Summarizer struct {
	client    *genai.Client
	modelName string
}

func NewSummarizer(ctx context.Context, apiKey string, modelName string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Summarizer{client: client, modelName: modelName}, nil
}

// Summarize returns the summary bullets for text, led by the event category when the model gives one.
func (s *Summarizer) Summarize(ctx context.Context, text string) ([]string, error) {
	analysis, err := s.GenerateSummary(ctx, text)
	if err != nil {
		return nil, err
	}
	points := analysis.Summary
	if analysis.Category != "" {
		points = append([]string{"Kategoria: " + analysis.Category}, points...)
	}
	return points, nil
}

func (s *Summarizer) GenerateSummary(ctx context.Context, text string) (*AIAnalysis, error) {
	prompt := fmt.Sprintf("Przeanalizuj poniższy raport bieżący:\n\n---\n%s", truncate(text, maxInputRunes))

	resp, err := s.client.Models.GenerateContent(ctx, s.modelName,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
			Role:  "user",
		}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
			ResponseMIMEType: "application/json",
			ResponseSchema:   getResponseSchema(),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	return parseAnalysis(resp.Text())
}

func parseAnalysis(respText string) (*AIAnalysis, error) {
	raw := strings.TrimSpace(respText)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var analysis AIAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w. Raw text: %s", err, respText)
	}

	var points []string
	for _, p := range analysis.Summary {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	analysis.Summary = points
	analysis.Category = strings.TrimSpace(analysis.Category)
	return &analysis, nil
}

func truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes])
}

func getResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {
				Type:        genai.TypeString,
				Description: "One of the defined report categories.",
			},
			"summary": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of 3-5 concise bullet points in Polish summarizing the report.",
			},
		},
		Required: []string{"category", "summary"},
	}
}
