// AngelaMos | 2026
// service_test.go

package document

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/docmailer/internal/account"
	"github.com/carterperez-dev/docmailer/internal/mail"
)

type fakeRepo struct {
	createErr     error
	markSentErr   error
	markFailedErr error

	created      *Document
	sentID       string
	failedID     string
	failedDetail string
}

func (f *fakeRepo) Create(_ context.Context, doc *Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = doc
	return nil
}

func (f *fakeRepo) MarkSent(_ context.Context, id string) error {
	if f.markSentErr != nil {
		return f.markSentErr
	}
	f.sentID = id
	return nil
}

func (f *fakeRepo) MarkFailed(_ context.Context, id, detail string) error {
	if f.markFailedErr != nil {
		return f.markFailedErr
	}
	f.failedID = id
	f.failedDetail = detail
	return nil
}

func (f *fakeRepo) GetByID(context.Context, string) (*Document, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) List(
	context.Context,
	ListDocumentsParams,
) ([]Document, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeRepo) Counts(context.Context) (*Counts, error) {
	return nil, errors.New("not implemented")
}

type fakeRenderer struct {
	html string
	err  error

	renderedName string
	fields       map[string]string
	extras       map[string]string
}

func (f *fakeRenderer) Render(
	_ context.Context,
	name string,
	fields, extras map[string]string,
) (string, error) {
	f.renderedName = name
	f.fields = fields
	f.extras = extras
	return f.html, f.err
}

func (f *fakeRenderer) List(context.Context) ([]string, error) {
	return []string{"receipt"}, nil
}

type fakeTransport struct {
	err  error
	sent []mail.Message
}

func (f *fakeTransport) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeAccess struct {
	decision  account.Decision
	err       error
	checkedID string
}

func (f *fakeAccess) CheckAccess(
	_ context.Context,
	accountID string,
) (account.Decision, error) {
	f.checkedID = accountID
	return f.decision, f.err
}

func newTestService(
	repo *fakeRepo,
	renderer *fakeRenderer,
	transport *fakeTransport,
	access *fakeAccess,
) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, renderer, transport, access, logger)
}

func baseRequest() GenerateRequest {
	return GenerateRequest{
		Template:       "receipt",
		RecipientEmail: "ada@example.com",
		FullName:       "Ada Lovelace",
		OrderNumber:    "ORD-7",
	}
}

func TestDeliverSuccess(t *testing.T) {
	repo := &fakeRepo{}
	renderer := &fakeRenderer{html: "<p>ok</p>"}
	transport := &fakeTransport{}
	access := &fakeAccess{}
	svc := newTestService(repo, renderer, transport, access)

	result, err := svc.Deliver(context.Background(), baseRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, StatusSent, result.Status)
	assert.NotEmpty(t, result.DocumentID)

	require.NotNil(t, repo.created)
	assert.Equal(t, StatusPending, repo.created.Status)
	assert.Nil(t, repo.created.AccountID, "public delivery is unattributed")
	assert.Equal(t, result.DocumentID, repo.sentID)

	// access is never consulted for public deliveries
	assert.Empty(t, access.checkedID)

	require.Len(t, transport.sent, 1)
	assert.Equal(t, "ada@example.com", transport.sent[0].To)
	assert.Equal(t, "Your Order ORD-7", transport.sent[0].Subject)
	assert.Equal(t, "<p>ok</p>", transport.sent[0].HTMLBody)
}

func TestDeliverCustomSubject(t *testing.T) {
	repo := &fakeRepo{}
	transport := &fakeTransport{}
	svc := newTestService(
		repo,
		&fakeRenderer{html: "x"},
		transport,
		&fakeAccess{},
	)

	req := baseRequest()
	req.Subject = "Your refund is on its way"

	_, err := svc.Deliver(context.Background(), req, "")
	require.NoError(t, err)

	require.Len(t, transport.sent, 1)
	assert.Equal(t, "Your refund is on its way", transport.sent[0].Subject)
}

func TestDeliverAttributed(t *testing.T) {
	repo := &fakeRepo{}
	access := &fakeAccess{decision: account.Decision{Allowed: true}}
	svc := newTestService(
		repo,
		&fakeRenderer{html: "x"},
		&fakeTransport{},
		access,
	)

	result, err := svc.Deliver(context.Background(), baseRequest(), "acct-1")
	require.NoError(t, err)

	assert.Equal(t, "acct-1", access.checkedID)
	assert.Equal(t, StatusSent, result.Status)
	require.NotNil(t, repo.created.AccountID)
	assert.Equal(t, "acct-1", *repo.created.AccountID)
}

func TestDeliverAccessDenied(t *testing.T) {
	renderer := &fakeRenderer{html: "x"}
	access := &fakeAccess{decision: account.Decision{
		Allowed: false,
		Reason:  account.DenialSubscriptionExpired,
	}}
	svc := newTestService(&fakeRepo{}, renderer, &fakeTransport{}, access)

	_, err := svc.Deliver(context.Background(), baseRequest(), "acct-1")

	var denied *AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, account.DenialSubscriptionExpired, denied.Reason)

	assert.Empty(t, renderer.renderedName, "denied requests must not render")
}

func TestDeliverAccessCheckError(t *testing.T) {
	access := &fakeAccess{err: errors.New("db down")}
	svc := newTestService(
		&fakeRepo{},
		&fakeRenderer{html: "x"},
		&fakeTransport{},
		access,
	)

	_, err := svc.Deliver(context.Background(), baseRequest(), "acct-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check access")
}

func TestDeliverRenderFailureAbortsBeforeRecord(t *testing.T) {
	repo := &fakeRepo{}
	renderer := &fakeRenderer{err: errors.New("template corrupt")}
	transport := &fakeTransport{}
	svc := newTestService(repo, renderer, transport, &fakeAccess{})

	_, err := svc.Deliver(context.Background(), baseRequest(), "")
	require.Error(t, err)

	assert.Nil(t, repo.created, "render failures must not create a record")
	assert.Empty(t, transport.sent)
}

func TestDeliverTransportFailure(t *testing.T) {
	repo := &fakeRepo{}
	transport := &fakeTransport{err: errors.New("smtp send: connection refused")}
	svc := newTestService(
		repo,
		&fakeRenderer{html: "x"},
		transport,
		&fakeAccess{},
	)

	result, err := svc.Deliver(context.Background(), baseRequest(), "")
	require.NoError(t, err, "transport failure settles the result, not an error")

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "smtp send: connection refused", result.Detail)
	assert.Equal(t, result.DocumentID, repo.failedID)
	assert.Equal(t, "smtp send: connection refused", repo.failedDetail)
	assert.Empty(t, repo.sentID)
}

func TestDeliverRecordFailureStillSends(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("db down")}
	transport := &fakeTransport{}
	svc := newTestService(
		repo,
		&fakeRenderer{html: "x"},
		transport,
		&fakeAccess{},
	)

	result, err := svc.Deliver(context.Background(), baseRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, StatusSent, result.Status)
	require.Len(t, transport.sent, 1)
	assert.Empty(t, repo.sentID, "no terminal update without a stored record")
}

func TestDeliverMarkFailedErrorStillSettles(t *testing.T) {
	repo := &fakeRepo{markFailedErr: errors.New("db down")}
	transport := &fakeTransport{err: errors.New("smtp send: timeout")}
	svc := newTestService(
		repo,
		&fakeRenderer{html: "x"},
		transport,
		&fakeAccess{},
	)

	result, err := svc.Deliver(context.Background(), baseRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "smtp send: timeout", result.Detail)
}

func TestListTemplates(t *testing.T) {
	svc := newTestService(
		&fakeRepo{},
		&fakeRenderer{},
		&fakeTransport{},
		&fakeAccess{},
	)

	names, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"receipt"}, names)
}
