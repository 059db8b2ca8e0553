// AngelaMos | 2026
// sender_test.go

package mail

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/docmailer/internal/config"
	"github.com/carterperez-dev/docmailer/internal/core"
)

func TestSendUnconfigured(t *testing.T) {
	sender := NewSender(
		config.SMTPConfig{SendTimeout: time.Second},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	err := sender.Send(context.Background(), Message{
		To:       "ada@example.com",
		Subject:  "hi",
		HTMLBody: "<p>hi</p>",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnavailable)
}

func TestPlainTextFallback(t *testing.T) {
	htmlBody := `<!DOCTYPE html>
<html>
<head><title>Order</title><style>p { color: red; }</style></head>
<body>
  <p>Hello <strong>Ada</strong>,</p>
  <p>Your order ORD-7 is confirmed.</p>
</body>
</html>`

	text := plainTextFallback(htmlBody)

	assert.True(
		t,
		strings.HasPrefix(text, "Hello"),
		"head/title content must be skipped, got %q",
		text,
	)
	assert.Contains(t, text, "Ada")
	assert.Contains(t, text, "Your order ORD-7 is confirmed.")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "<")
}

func TestPlainTextFallbackEmpty(t *testing.T) {
	assert.Empty(t, plainTextFallback(""))
	assert.Empty(t, plainTextFallback("<div><span></span></div>"))
}
