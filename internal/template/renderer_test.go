// AngelaMos | 2026
// renderer_test.go

package template

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/docmailer/internal/config"
)

func newTestRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.TemplatesConfig{Dir: dir, CacheTTL: time.Minute}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRenderer(cfg, nil, logger), dir
}

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name+".html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRenderSubstitutesFields(t *testing.T) {
	r, dir := newTestRenderer(t)
	writeTemplate(t, dir, "receipt", "<p>Hello FIRSTNAME, order ORDER_NUMBER</p>")

	html, err := r.Render(context.Background(), "receipt", map[string]string{
		"FIRSTNAME":    "Ada",
		"ORDER_NUMBER": "ORD-42",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "<p>Hello Ada, order ORD-42</p>", html)
}

func TestRenderLongestPlaceholderFirst(t *testing.T) {
	r, dir := newTestRenderer(t)
	writeTemplate(t, dir, "order", "ORDER_NUMBER / ORDER_NUM")

	html, err := r.Render(context.Background(), "order", map[string]string{
		"ORDER_NUM":    "short",
		"ORDER_NUMBER": "long",
	}, nil)
	require.NoError(t, err)

	// ORDER_NUMBER must not be clobbered by the ORDER_NUM replacement
	assert.Equal(t, "long / short", html)
}

func TestRenderExtrasAppliedAfterFields(t *testing.T) {
	r, dir := newTestRenderer(t)
	writeTemplate(t, dir, "promo", "NOTES COUPON_CODE")

	html, err := r.Render(
		context.Background(),
		"promo",
		map[string]string{"NOTES": "thanks"},
		map[string]string{"COUPON_CODE": "SAVE10"},
	)
	require.NoError(t, err)

	assert.Equal(t, "thanks SAVE10", html)
}

func TestRenderTemplateNotFound(t *testing.T) {
	r, _ := newTestRenderer(t)

	_, err := r.Render(context.Background(), "missing", nil, nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderRejectsTraversalNames(t *testing.T) {
	r, _ := newTestRenderer(t)

	for _, name := range []string{"", "../etc/passwd", "a/b", `a\b`, "a.b"} {
		_, err := r.Render(context.Background(), name, nil, nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound, "name %q", name)
	}
}

func TestList(t *testing.T) {
	r, dir := newTestRenderer(t)
	writeTemplate(t, dir, "receipt", "x")
	writeTemplate(t, dir, "apple", "x")
	require.NoError(
		t,
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644),
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))

	names, err := r.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"apple", "receipt"}, names)
}

func TestSubstituteEmptyValues(t *testing.T) {
	assert.Equal(t, "unchanged", substitute("unchanged", nil))
	assert.Equal(t, "unchanged", substitute("unchanged", map[string]string{}))
}
