package commands

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

var (
	colorText    = lipgloss.Color("#c0caf5")
	colorTextDim = lipgloss.Color("#565f89")
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorError   = lipgloss.Color("#f7768e")
	colorWarn    = lipgloss.Color("#e0af68")
)

var (
	assistantLabelStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	userLabelStyle      = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	errorStyle          = lipgloss.NewStyle().Foreground(colorError)
	warnStyle           = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle            = lipgloss.NewStyle().Foreground(colorTextDim)
)

// formatErrorMessage renders a fatal startup error for the user
func formatErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, apierrors.ErrEmptyUserName):
		return warnStyle.Render("⚠️ Name cannot be empty. Exiting.")
	case apierrors.IsCharacterError(err):
		return errorStyle.Render(fmt.Sprintf("❌ Failed to load character: %v", err))
	case apierrors.IsConfigError(err):
		var sb strings.Builder
		sb.WriteString(errorStyle.Render("❌ " + err.Error()))
		if vars := apierrors.GetEnvVars(err); len(vars) > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Hint: set %s in the environment or in %s", strings.Join(vars, ", "), models.DefaultEnvFile)))
		}
		return sb.String()
	default:
		return errorStyle.Render(fmt.Sprintf("❌ %v", err))
	}
}

// formatStreamError renders a per-turn streaming failure
func formatStreamError(err error) string {
	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("❌ Streaming error: %v", err)))

	hint := streamHint(apierrors.GetHTTPStatus(err))
	if se, ok := apierrors.AsStreamError(err); hint == "" && ok && se.Opening {
		hint = "the request did not reach the model, check " + models.EnvBaseURL + " and your connection"
	}
	if hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}
	return sb.String()
}

func streamHint(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "check " + models.EnvAPIKey
	case http.StatusPaymentRequired:
		return "the account has run out of credits"
	case http.StatusNotFound:
		return "check " + models.EnvModel + " and " + models.EnvBaseURL
	case http.StatusTooManyRequests:
		return "rate limited, wait a moment and try again"
	case 0:
		return ""
	default:
		if status >= 500 {
			return "the provider is having trouble, try again"
		}
		return ""
	}
}
