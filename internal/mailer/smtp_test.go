package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContactMessage(t *testing.T) {
	msg := &model.ContactMessage{
		Name:       "Eve\r\nBcc: victim@x.com",
		Email:      "eve@x.com",
		Message:    "<script>alert(1)</script>\nline two",
		ReceivedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw := string(BuildContactMessage("relay@x.com", "inbox@x.com", msg))
	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)

	assert.Contains(t, head, "From: NexLearn <relay@x.com>\r\n")
	assert.Contains(t, head, "To: inbox@x.com\r\n")
	assert.Contains(t, head, "Reply-To: eve@x.com\r\n")
	assert.Contains(t, head, "Subject: [NexLearn Contact] Pesan Baru dari Eve  Bcc: victim@x.com\r\n")
	assert.NotContains(t, head, "\r\nBcc:")

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "<br />line two")
}

func TestSendContact(t *testing.T) {
	msg := &model.ContactMessage{Name: "Ana", Email: "ana@x.com", Message: "hi"}

	t.Run("without credentials the message is dropped", func(t *testing.T) {
		m := New(SMTPConfig{Host: "smtp.example.com", Port: 587}, zerolog.Nop())
		m.send = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send must not be called")
			return nil
		}
		assert.False(t, m.Configured())
		assert.NoError(t, m.SendContact(context.Background(), msg))
	})

	t.Run("inbox defaults to the account", func(t *testing.T) {
		m := New(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "relay@x.com", Password: "pw"}, zerolog.Nop())
		var gotAddr string
		var gotTo []string
		m.send = func(addr string, _ smtp.Auth, from string, to []string, _ []byte) error {
			gotAddr, gotTo = addr, to
			assert.Equal(t, "relay@x.com", from)
			return nil
		}
		require.NoError(t, m.SendContact(context.Background(), msg))
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, []string{"relay@x.com"}, gotTo)
	})

	t.Run("transport errors are returned", func(t *testing.T) {
		m := New(SMTPConfig{Host: "h", Port: 25, Username: "u", Password: "p", Inbox: "in@x.com"}, zerolog.Nop())
		m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("boom") }
		assert.ErrorContains(t, m.SendContact(context.Background(), msg), "boom")
	})
}
