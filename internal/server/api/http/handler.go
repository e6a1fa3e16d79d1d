package http

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GenAPI/internal/server/constant"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/DenisKhanov/GenAPI/internal/server/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"io"
	"mime/multipart"
	"net/http"
)

// Service runs a generation request and returns the generated text.
type Service interface {
	Generate(ctx context.Context, req models.GenerationRequest) (string, error)
}

// UploadStore persists request attachments for the lifetime of one request.
type UploadStore interface {
	Save(field string, fh *multipart.FileHeader) (*models.Upload, error)
	Delete(upload *models.Upload) error
}

type Handler struct {
	service Service
	uploads UploadStore
}

func NewHandler(service Service, uploads UploadStore) *Handler {
	return &Handler{
		service: service,
		uploads: uploads,
	}
}

// AttachmentRoutes lists the routes served by the generic attachment handler.
func AttachmentRoutes() []models.AttachmentRoute {
	return []models.AttachmentRoute{
		{
			Kind:           models.AttachmentImage,
			Path:           constant.ROUTE_GENERATE_IMAGE,
			Field:          constant.FORM_FIELD_IMAGE,
			DefaultPrompt:  constant.DEFAULT_PROMPT_IMAGE,
			MissingMessage: constant.ERR_TEXT_NO_IMAGE,
		},
		{
			Kind:           models.AttachmentDocument,
			Path:           constant.ROUTE_GENERATE_DOCUMENT,
			Field:          constant.FORM_FIELD_DOCUMENT,
			DefaultPrompt:  constant.DEFAULT_PROMPT_DOCUMENT,
			MissingMessage: constant.ERR_TEXT_NO_DOCUMENT,
		},
		{
			Kind:           models.AttachmentAudio,
			Path:           constant.ROUTE_GENERATE_AUDIO,
			Field:          constant.FORM_FIELD_AUDIO,
			DefaultPrompt:  constant.DEFAULT_PROMPT_AUDIO,
			MissingMessage: constant.ERR_TEXT_NO_AUDIO,
		},
	}
}

// RegisterRoutes mounts the four generation routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST(constant.ROUTE_GENERATE_TEXT, h.GenerateText)
	for _, route := range AttachmentRoutes() {
		r.POST(route.Path, h.GenerateFromAttachment(route))
	}
}

// GenerateText forwards up to three JSON text fragments to the model.
// Absent fragments are left out; no defaults are applied on this route.
func (h *Handler) GenerateText(c *gin.Context) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logrus.WithError(err).Warn("invalid generate-text body")
		h.respond(c, "", &models.ClientInputError{Message: constant.ERR_TEXT_INVALID_BODY, Err: err})
		return
	}

	output, err := h.service.Generate(c.Request.Context(), models.GenerationRequest{
		Kind:    models.AttachmentNone,
		Prompts: []*string{req.Prompt, req.Prompt2, req.Prompt3},
	})
	h.respond(c, output, err)
}

// GenerateFromAttachment returns the handler of one attachment route. The stored upload is
// deleted when the handler returns, whatever the outcome of the model call.
func (h *Handler) GenerateFromAttachment(route models.AttachmentRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(route.Field)
		if form := c.Request.MultipartForm; form != nil {
			defer form.RemoveAll()
		}
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			logrus.WithError(err).WithField("field", route.Field).Warn("request without required attachment")
			h.respond(c, "", &models.ClientInputError{Message: route.MissingMessage, Err: models.ErrMissingAttachment})
			return
		case err != nil:
			h.respond(c, "", fmt.Errorf("parse multipart form: %w", err))
			return
		}
		prompt := service.PromptOrDefault(c.PostForm(constant.FORM_FIELD_PROMPT), route.DefaultPrompt)

		upload, err := h.uploads.Save(route.Field, fh)
		if err != nil {
			h.respond(c, "", err)
			return
		}
		defer h.cleanup(upload)

		output, err := h.service.Generate(c.Request.Context(), models.GenerationRequest{
			Kind:   route.Kind,
			Prompt: prompt,
			Upload: upload,
		})
		h.respond(c, output, err)
	}
}

// respond maps the outcome of a request to its status code and JSON body.
func (h *Handler) respond(c *gin.Context, output string, err error) {
	var (
		clientErr   *models.ClientInputError
		providerErr *models.ProviderError
	)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.Succeeded(output))
	case errors.As(err, &clientErr):
		c.JSON(http.StatusBadRequest, models.Failed(clientErr.Error()))
	case errors.As(err, &providerErr):
		c.JSON(http.StatusInternalServerError, models.Failed(providerErr.Error()))
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, models.Failed(err.Error()))
	}
}

func (h *Handler) cleanup(upload *models.Upload) {
	if err := h.uploads.Delete(upload); err != nil {
		logrus.WithError(err).Warn("transient upload was not cleaned up")
	}
}
