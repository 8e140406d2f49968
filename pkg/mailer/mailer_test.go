package mailer

import (
	"context"
	"testing"

	"smart-dine/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRender_Verification(t *testing.T) {
	r, err := NewRenderer("Smart Dine")
	require.NoError(t, err)

	msg, err := r.Render(TemplateVerification, "ali@example.com", Data{
		Username:  "ali",
		Link:      "http://localhost:3000/verify-email/abc",
		ExpiresIn: "24 hours",
	})
	require.NoError(t, err)

	assert.Equal(t, "ali@example.com", msg.To)
	assert.Equal(t, "Verify Your Email - Smart Dine", msg.Subject)
	assert.Contains(t, msg.Text, "http://localhost:3000/verify-email/abc")
	assert.Contains(t, msg.Text, "24 hours")
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/verify-email/abc"`)
	assert.Contains(t, msg.HTML, "Welcome, ali!")
}

func TestRender_PasswordResetEscapesHTML(t *testing.T) {
	r, err := NewRenderer("Smart Dine")
	require.NoError(t, err)

	msg, err := r.Render(TemplatePasswordReset, "x@example.com", Data{
		Username:  "<b>x</b>",
		Link:      "http://localhost:3000/reset-password/t",
		ExpiresIn: "1 hour",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reset Your Password - Smart Dine", msg.Subject)
	assert.NotContains(t, msg.HTML, "<b>x</b>")
	assert.Contains(t, msg.HTML, "1 hour")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer("Smart Dine")
	require.NoError(t, err)

	_, err = r.Render("nope", "x@example.com", Data{})
	assert.Error(t, err)
}

func TestNewSender_LogsWithoutHost(t *testing.T) {
	s := NewSender(utils.EmailConfig{}, zap.NewNop())

	_, isLog := s.(*logSender)
	assert.True(t, isLog)
	assert.NoError(t, s.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Text: "t"}))
}
