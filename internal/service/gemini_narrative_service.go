package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Compass/config"
	"github.com/lshigami/Compass/internal/scoring"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// NarrativeService writes a short human-readable interpretation of a
// scoring result. An empty string with a nil error means no narrative is
// available.
type NarrativeService interface {
	Describe(ctx context.Context, result scoring.Result) (string, error)
}

type geminiNarrativeService struct {
	model *genai.GenerativeModel
}

func NewGeminiNarrativeService(lc fx.Lifecycle, cfg *config.Config) (NarrativeService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Profiles will carry the engine's analysis note only.")
		return &geminiNarrativeService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	model := client.GenerativeModel(cfg.GeminiModel)
	model.SetTemperature(0.4)
	return &geminiNarrativeService{model: model}, nil
}

func (s *geminiNarrativeService) Describe(ctx context.Context, result scoring.Result) (string, error) {
	if s.model == nil {
		return "", nil
	}
	resp, err := s.model.GenerateContent(ctx, genai.Text(buildNarrativePrompt(result)))
	if err != nil {
		log.Error().Err(err).Str("code", result.HollandCode).Msg("Gemini API error during narrative generation")
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}

func buildNarrativePrompt(r scoring.Result) string {
	var b strings.Builder
	b.WriteString("You are an experienced career counsellor.\n")
	b.WriteString("Write a short, encouraging interpretation (at most 120 words, plain text, no headings) of this career assessment.\n\n")
	if r.HollandCode == "" {
		b.WriteString("Holland code: none detected\n")
	} else {
		fmt.Fprintf(&b, "Holland code: %s (%s)\n", r.HollandCode, r.PersonalityLabel)
	}

	areas := make([]string, 0, len(r.CompetencyScores))
	for area := range r.CompetencyScores {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	if len(areas) > 0 {
		b.WriteString("Competency scores:\n")
		for _, area := range areas {
			fmt.Fprintf(&b, "- %s: %.1f\n", area, r.CompetencyScores[area])
		}
	}
	fmt.Fprintf(&b, "Suggested careers: %s\n", strings.Join(r.CareerSuggestions, ", "))
	fmt.Fprintf(&b, "Development areas: %s\n", strings.Join(r.DevelopmentAreas, ", "))
	b.WriteString("\nMention one concrete next step the person could take this month.")
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
