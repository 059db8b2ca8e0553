// AngelaMos | 2026
// service.go

package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/docmailer/internal/account"
	"github.com/carterperez-dev/docmailer/internal/mail"
)

type Renderer interface {
	Render(
		ctx context.Context,
		name string,
		fields, extras map[string]string,
	) (string, error)
	List(ctx context.Context) ([]string, error)
}

type Transport interface {
	Send(ctx context.Context, msg mail.Message) error
}

type AccessChecker interface {
	CheckAccess(
		ctx context.Context,
		accountID string,
	) (account.Decision, error)
}

type DeliveryResult struct {
	DocumentID string
	Status     Status
	Detail     string
}

type Service struct {
	repo      Repository
	renderer  Renderer
	transport Transport
	access    AccessChecker
	logger    *slog.Logger
}

func NewService(
	repo Repository,
	renderer Renderer,
	transport Transport,
	access AccessChecker,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		renderer:  renderer,
		transport: transport,
		access:    access,
		logger:    logger,
	}
}

// Deliver renders the template, records a pending document, sends the email
// and settles the record into a terminal status. Rendering failures abort
// before any record exists; persistence failures after that point are
// logged and never change the delivery outcome.
func (s *Service) Deliver(
	ctx context.Context,
	req GenerateRequest,
	accountID string,
) (*DeliveryResult, error) {
	if accountID != "" {
		decision, err := s.access.CheckAccess(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("check access: %w", err)
		}
		if !decision.Allowed {
			return nil, &AccessDeniedError{Reason: decision.Reason}
		}
	}

	fields := buildReplacements(req, time.Now())

	html, err := s.renderer.Render(
		ctx,
		req.Template,
		fields,
		req.AdditionalData,
	)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ID:             uuid.New().String(),
		Template:       req.Template,
		RecipientEmail: req.RecipientEmail,
		OrderNumber:    req.OrderNumber,
		FullName:       req.FullName,
		Status:         StatusPending,
	}
	if accountID != "" {
		doc.AccountID = &accountID
	}

	recorded := true
	if createErr := s.repo.Create(ctx, doc); createErr != nil {
		recorded = false
		s.logger.Error("document record insert failed",
			"document_id", doc.ID,
			"error", createErr,
		)
	}

	subject := req.Subject
	if subject == "" {
		subject = "Your Order " + req.OrderNumber
	}

	sendErr := s.transport.Send(ctx, mail.Message{
		To:       req.RecipientEmail,
		Subject:  subject,
		HTMLBody: html,
	})

	if sendErr != nil {
		detail := sendErr.Error()
		if recorded {
			if markErr := s.repo.MarkFailed(ctx, doc.ID, detail); markErr != nil {
				s.logger.Error("document status update failed",
					"document_id", doc.ID,
					"status", StatusFailed,
					"error", markErr,
				)
			}
		}
		s.logger.Warn("email delivery failed",
			"document_id", doc.ID,
			"recipient", req.RecipientEmail,
			"error", sendErr,
		)
		return &DeliveryResult{
			DocumentID: doc.ID,
			Status:     StatusFailed,
			Detail:     detail,
		}, nil
	}

	if recorded {
		if markErr := s.repo.MarkSent(ctx, doc.ID); markErr != nil {
			s.logger.Error("document status update failed",
				"document_id", doc.ID,
				"status", StatusSent,
				"error", markErr,
			)
		}
	}

	return &DeliveryResult{
		DocumentID: doc.ID,
		Status:     StatusSent,
	}, nil
}

func (s *Service) GetDocument(
	ctx context.Context,
	id string,
) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDocuments(
	ctx context.Context,
	params ListDocumentsParams,
) ([]Document, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) ListTemplates(ctx context.Context) ([]string, error) {
	return s.renderer.List(ctx)
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	return s.repo.Counts(ctx)
}

type AccessDeniedError struct {
	Reason account.DenialReason
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + string(e.Reason)
}
