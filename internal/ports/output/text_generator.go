package output

import (
	"context"

	"counsel-interview/internal/domain"
)

// TextGenerator interface - Output port
// A stateless generation backend: every call carries the full context.
type TextGenerator interface {
	// Generate returns the generated text for one request.
	// Failures wrap domain.ErrBackendUnavailable, domain.ErrBackendTimeout or domain.ErrInvalidRequest.
	Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error)
}
