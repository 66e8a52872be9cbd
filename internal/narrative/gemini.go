package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/pkg/config"
	"github.com/wonny/finlens/pkg/logger"
)

// GeminiGenerator produces narratives with Google's Gemini models.
// The API key is supplied per call, so one generator serves every session.
type GeminiGenerator struct {
	model       string
	temperature float32
	baseURL     string
	logger      *logger.Logger
}

var _ contracts.NarrativeGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini-backed narrative generator
func NewGeminiGenerator(cfg config.GeminiConfig, log *logger.Logger) *GeminiGenerator {
	return &GeminiGenerator{
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		baseURL:     cfg.BaseURL,
		logger:      log.WithField("module", "narrative"),
	}
}

// Generate sends the analysis prompt and returns the model's text unmodified
func (g *GeminiGenerator) Generate(ctx context.Context, apiKey string, companyName string, series contracts.NormalizedSeries) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", contracts.ErrMissingCredential
	}

	prompt, err := BuildPrompt(companyName, series)
	if err != nil {
		return "", &contracts.NarrativeGenerationError{Err: err}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(g.baseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", &contracts.NarrativeGenerationError{Err: fmt.Errorf("failed to create GenAI client: %w", err)}
	}

	g.logger.WithFields(map[string]interface{}{
		"model":    g.model,
		"company":  companyName,
		"quarters": len(series),
	}).Debug("Requesting narrative")

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", &contracts.NarrativeGenerationError{Err: fmt.Errorf("gemini generation failed: %w", err)}
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", &contracts.NarrativeGenerationError{Err: errors.New("gemini returned an empty response")}
	}

	return text, nil
}
