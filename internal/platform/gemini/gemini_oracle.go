package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/kindredapp/kindred-api/internal/config"
	"github.com/kindredapp/kindred-api/internal/oracle"
	"google.golang.org/genai"
)

// defaultPromptTemplate asks the model for a single integer rating wrapped
// in a JSON object, which keeps parsing strict and cheap.
const defaultPromptTemplate = `You are a matchmaking assistant. Rate the {{.Aspect}} compatibility
of the two dating profiles below on an integer scale from 0 (completely
incompatible) to 100 (perfectly compatible).

Profile A:
{{.FingerprintA}}

Profile B:
{{.FingerprintB}}

Respond with ONLY a JSON object of the form {"score": <integer>} and
nothing else.`

// contentGenerator abstracts the Gemini client call so tests can stub the
// remote round trip.
type contentGenerator interface {
	generate(ctx context.Context, model, prompt string) (string, error)
}

// GeminiOracle implements the oracle.Oracle interface using Google's
// Gemini API to rate profile-pair compatibility.
type GeminiOracle struct {
	logger *slog.Logger

	// config contains oracle-specific configuration
	config config.OracleConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// generator performs the actual Gemini API call
	generator contentGenerator

	// model is the name of the Gemini model to use
	model string

	// timeout bounds every oracle call
	timeout time.Duration
}

// NewGeminiOracle creates a new GeminiOracle with the provided
// dependencies. Returns an error if the configuration is invalid or the
// Gemini client cannot be constructed.
func NewGeminiOracle(ctx context.Context, logger *slog.Logger, cfg config.OracleConfig) (*GeminiOracle, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", oracle.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", oracle.ErrInvalidConfig)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", oracle.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", oracle.ErrInvalidConfig, err)
	}

	return newGeminiOracle(logger, cfg, &genaiGenerator{client: client})
}

// newGeminiOracle wires a GeminiOracle around any contentGenerator; tests
// use it to inject a stub in place of the real client.
func newGeminiOracle(logger *slog.Logger, cfg config.OracleConfig, gen contentGenerator) (*GeminiOracle, error) {
	promptTemplate, err := template.New("compatibility").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", oracle.ErrInvalidConfig, err)
	}

	return &GeminiOracle{
		logger:         logger.With(slog.String("component", "gemini_oracle")),
		config:         cfg,
		promptTemplate: promptTemplate,
		generator:      gen,
		model:          cfg.ModelName,
		timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Ensure GeminiOracle implements the oracle.Oracle interface
var _ oracle.Oracle = (*GeminiOracle)(nil)

// Score implements oracle.Oracle. It makes a single bounded call to the
// Gemini API; any failure is returned to the caller, who is expected to
// degrade to the local fallback rather than retry.
func (o *GeminiOracle) Score(ctx context.Context, aspect oracle.Aspect, fingerprintA, fingerprintB string) (int, error) {
	if fingerprintA == "" || fingerprintB == "" {
		return 0, oracle.ErrEmptyFingerprint
	}

	prompt, err := o.createPrompt(aspect, fingerprintA, fingerprintB)
	if err != nil {
		return 0, err
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	o.logger.DebugContext(ctx, "making Gemini oracle call",
		"aspect", string(aspect),
		"prompt_length", len(prompt))

	text, err := o.generator.generate(callCtx, o.model, prompt)
	if err != nil {
		o.logger.WarnContext(ctx, "Gemini oracle call failed",
			"aspect", string(aspect),
			"error", err)
		return 0, fmt.Errorf("%w: %v", oracle.ErrOracleUnavailable, err)
	}

	score, err := parseScore(text)
	if err != nil {
		o.logger.WarnContext(ctx, "Gemini oracle returned unusable response",
			"aspect", string(aspect),
			"error", err)
		return 0, err
	}

	o.logger.DebugContext(ctx, "Gemini oracle call successful",
		"aspect", string(aspect),
		"score", score)

	return score, nil
}

// createPrompt renders the prompt template for one aspect of one pair.
func (o *GeminiOracle) createPrompt(aspect oracle.Aspect, fingerprintA, fingerprintB string) (string, error) {
	data := promptData{
		Aspect:       string(aspect),
		FingerprintA: fingerprintA,
		FingerprintB: fingerprintB,
	}

	var buf bytes.Buffer
	if err := o.promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}

// parseScore extracts and validates the integer score from the model's
// JSON response. Out-of-range scores are rejected, not clamped: a partial
// or sloppy response is treated as a failed call.
func parseScore(text string) (int, error) {
	trimmed := strings.TrimSpace(text)

	// Models occasionally wrap JSON in a markdown fence despite
	// instructions; strip it before parsing.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var parsed scoreSchema
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return 0, fmt.Errorf("%w: failed to parse JSON response: %v", oracle.ErrInvalidResponse, err)
	}

	if parsed.Score < 0 || parsed.Score > 100 {
		return 0, fmt.Errorf("%w: score %d outside [0,100]", oracle.ErrInvalidResponse, parsed.Score)
	}

	return parsed.Score, nil
}

// genaiGenerator is the production contentGenerator backed by the genai
// client.
type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}
