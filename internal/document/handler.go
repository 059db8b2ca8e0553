// AngelaMos | 2026
// handler.go

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/docmailer/internal/core"
	"github.com/carterperez-dev/docmailer/internal/middleware"
	"github.com/carterperez-dev/docmailer/internal/template"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)
		r.Post("/generate-document", h.Generate)
	})

	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/{documentID}", h.GetDocument)
	r.Get("/templates", h.ListTemplates)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/documents", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListDocumentsAdmin)
	})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	accountID := middleware.GetAccountID(r.Context())

	result, err := h.service.Deliver(r.Context(), req, accountID)
	if err != nil {
		var denied *AccessDeniedError
		if errors.As(err, &denied) {
			core.JSONError(w, core.NewAppError(
				core.ErrAccessDenied,
				"no active subscription",
				http.StatusForbidden,
				"SUBSCRIPTION_REQUIRED",
			))
			return
		}
		if errors.Is(err, template.ErrTemplateNotFound) {
			core.NotFound(w, "template")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if result.Status == StatusFailed {
		core.JSONError(w, core.NewAppError(
			core.ErrTransportSend,
			fmt.Sprintf(
				"document %s created but email delivery failed",
				result.DocumentID,
			),
			http.StatusBadGateway,
			"DELIVERY_FAILED",
		))
		return
	}

	core.OK(w, GenerateResponse{
		Success:    true,
		DocumentID: result.DocumentID,
		Message: fmt.Sprintf(
			"Document generated and sent to %s",
			req.RecipientEmail,
		),
		EmailSent: true,
	})
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	params := ListDocumentsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	docs, total, err := h.service.ListDocuments(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDocumentResponseList(docs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListDocumentsAdmin(w http.ResponseWriter, r *http.Request) {
	params := ListDocumentsParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
		AccountID: r.URL.Query().Get("account_id"),
		Status:    r.URL.Query().Get("status"),
	}

	docs, total, err := h.service.ListDocuments(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDocumentResponseList(docs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	doc, err := h.service.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDocumentResponse(doc))
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TemplateListResponse{
		Templates: templates,
		Count:     len(templates),
	})
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
