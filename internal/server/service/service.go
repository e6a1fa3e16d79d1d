// Package service provides the generation logic: it shapes requests into content parts,
// submits them to the configured generative model and classifies the outcome.
package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/sirupsen/logrus"
	"time"
)

// GenerativeModel is the Model Gateway: a client of a remote generative-language-model provider.
type GenerativeModel interface {
	// GenerateContent submits the ordered content parts and returns the generated text.
	GenerateContent(ctx context.Context, parts []models.ContentPart) (string, error)
	// Name returns the provider name (e.g., gemini).
	Name() string
}

// UploadReader gives access to the content of stored uploads.
type UploadReader interface {
	Read(upload *models.Upload) ([]byte, error)
}

// Recorder receives the outcome of every gateway call.
type Recorder interface {
	RecordGatewayCall(provider, kind string, err error, duration time.Duration)
}

// Service represents the generation pipeline shared by every route.
type Service struct {
	model    GenerativeModel // Configured gateway, reused by every request
	uploads  UploadReader    // Storage of transient attachments
	recorder Recorder        // Optional metrics sink
	timeout  time.Duration   // Bound of a gateway call, 0 means none
}

// NewService creates a new Service.
// Arguments:
//   - model: the generative model gateway.
//   - uploads: the store holding transient attachments.
//   - recorder: an optional Recorder, may be nil.
//   - timeout: the maximum duration of a gateway call (0 disables it).
//
// Returns a pointer to a Service.
func NewService(model GenerativeModel, uploads UploadReader, recorder Recorder, timeout time.Duration) *Service {
	return &Service{
		model:    model,
		uploads:  uploads,
		recorder: recorder,
		timeout:  timeout,
	}
}

// BuildParts normalizes a generation request into content parts.
// Attachment requests without an upload fail with a ClientInputError.
func (s *Service) BuildParts(req models.GenerationRequest) ([]models.ContentPart, error) {
	switch req.Kind {
	case models.AttachmentNone, "":
		return TextParts(req.Prompts...), nil
	case models.AttachmentImage, models.AttachmentDocument, models.AttachmentAudio:
		if req.Upload == nil {
			return nil, &models.ClientInputError{
				Message: fmt.Sprintf("%s attachment is required", req.Kind),
				Err:     models.ErrMissingAttachment,
			}
		}
		data, err := s.uploads.Read(req.Upload)
		if err != nil {
			return nil, err
		}
		return AttachmentParts(req.Prompt, data, req.Upload.MIMEType), nil
	default:
		return nil, &models.ClientInputError{Message: fmt.Sprintf("unsupported attachment kind %q", req.Kind)}
	}
}

// Generate runs one request through the gateway and returns the generated text.
// Gateway faults are returned as *models.ProviderError carrying the provider's message.
func (s *Service) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	parts, err := s.BuildParts(req)
	if err != nil {
		logrus.WithError(err).WithField("kind", req.Kind).Error("failed to build content parts")
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.model.GenerateContent(ctx, parts)
	if s.recorder != nil {
		s.recorder.RecordGatewayCall(s.model.Name(), string(kindOf(req)), err, time.Since(start))
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"provider": s.model.Name(),
			"kind":     kindOf(req),
			"parts":    len(parts),
		}).Error("generative model call failed")
		var providerErr *models.ProviderError
		if errors.As(err, &providerErr) {
			return "", providerErr
		}
		return "", &models.ProviderError{Provider: s.model.Name(), Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"provider": s.model.Name(),
		"kind":     kindOf(req),
		"duration": time.Since(start),
	}).Info("content generated")
	return text, nil
}

func kindOf(req models.GenerationRequest) models.AttachmentKind {
	if req.Kind == "" {
		return models.AttachmentNone
	}
	return req.Kind
}
