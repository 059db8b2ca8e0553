// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/docmailer/internal/core"
	"github.com/carterperez-dev/docmailer/internal/middleware"
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

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Get("/{accountID}", h.GetAccount)
		r.Delete("/{accountID}", h.DeleteAccount)
		r.Put("/{accountID}/toggle", h.ToggleActive)
		r.Put("/{accountID}/subscription", h.UpdateSubscription)
	})
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	params := ListAccountsParams{
		Page:             parseIntQuery(r, "page", 1),
		PageSize:         parseIntQuery(r, "page_size", 20),
		Search:           r.URL.Query().Get("search"),
		Role:             r.URL.Query().Get("role"),
		SubscriptionType: r.URL.Query().Get("subscription_type"),
	}

	accounts, total, err := h.service.ListAccounts(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToAccountResponseList(accounts, time.Now()),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToAccountResponse(acct, time.Now()))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	acct, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct, time.Now()))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetAccountID(r.Context())
	targetID := chi.URLParam(r, "accountID")

	if err := h.service.CanDeleteAccount(r.Context(), requesterID, targetID); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, err.Error())
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), targetID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	requesterID := middleware.GetAccountID(r.Context())
	targetID := chi.URLParam(r, "accountID")

	acct, err := h.service.ToggleActive(r.Context(), requesterID, targetID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot change own active state")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToggleResponse{ID: acct.ID, IsActive: acct.IsActive})
}

func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "accountID")

	var req UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.UpdateSubscription(r.Context(), targetID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "account")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct, time.Now()))
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
