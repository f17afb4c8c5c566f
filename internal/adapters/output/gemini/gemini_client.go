package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"counsel-interview/configs"
	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

var _ output.TextGenerator = (*GeminiClientAdapter)(nil)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 300 * time.Second
)

// GeminiClientAdapter struct - Output adapter for the Gemini API
type GeminiClientAdapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClientAdapter func - Creates the Gemini client. The API key is required.
func NewGeminiClientAdapter(ctx context.Context, config configs.Gemini) (*GeminiClientAdapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logrus.Infof("Gemini client adapter initialized with model: %s, timeout: %v", model, timeout)
	return &GeminiClientAdapter{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate implements output.TextGenerator
func (a *GeminiClientAdapter) Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if request.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}
	if request.Temperature != nil {
		temperature := float32(*request.Temperature)
		config.Temperature = &temperature
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(request.Prompt), config)
	if err != nil {
		return nil, classifyError(err)
	}

	response := &domain.GenerationResponse{
		Content: resp.Text(),
		Model:   a.model,
	}
	if resp.ModelVersion != "" {
		response.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		response.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	logrus.Infof("Gemini generation successful, model: %s, tokens: %d", response.Model, response.TotalTokens)
	return response, nil
}

// classifyError maps SDK failures to the backend error taxonomy
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	switch {
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	case code >= 400:
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
}
