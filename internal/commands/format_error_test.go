package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/diogo/rpchat/internal/api"
	apierrors "github.com/diogo/rpchat/internal/errors"
)

func TestFormatErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"empty name", apierrors.ErrEmptyUserName, []string{"⚠️ Name cannot be empty. Exiting."}},
		{"character", apierrors.NewCharacterError("character.json", errors.New("no such file")), []string{"❌ Failed to load character: character.json: no such file"}},
		{"missing env", apierrors.NewMissingEnvError("BASE_URL"), []string{"❌ Missing environment variables: BASE_URL", "Hint: set BASE_URL"}},
		{"wrapped", fmt.Errorf("startup: %w", apierrors.NewInvalidEnvError("MAX_DESCRIPTION_LENGTH", "MAX_DESCRIPTION_LENGTH must be an integer", nil)), []string{"MAX_DESCRIPTION_LENGTH must be an integer"}},
		{"other", errors.New("boom"), []string{"❌ boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatErrorMessage(tt.err)
			if tt.err == nil {
				if got != "" {
					t.Errorf("expected empty for nil error, got %q", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatErrorMessage() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestFormatStreamError_Hints(t *testing.T) {
	tests := []struct {
		status int
		hint   string
	}{
		{401, "check OPENROUTER_API_KEY"},
		{402, "credits"},
		{404, "check LLM_MODEL and BASE_URL"},
		{429, "rate limited"},
		{502, "provider is having trouble"},
	}

	for _, tt := range tests {
		err := apierrors.NewStreamError("m", true, &api.HTTPError{Status: tt.status, Err: errors.New("request failed")})
		got := formatStreamError(err)
		if !strings.HasPrefix(got, "❌ Streaming error: request failed") {
			t.Errorf("status %d: unexpected message %q", tt.status, got)
		}
		if !strings.Contains(got, tt.hint) {
			t.Errorf("status %d: expected hint %q in %q", tt.status, tt.hint, got)
		}
	}

	if got := formatStreamError(errors.New("eof")); strings.Contains(got, "Hint") {
		t.Errorf("no hint expected without a status, got %q", got)
	}
}

func TestFormatStreamError_OpeningWithoutStatus(t *testing.T) {
	got := formatStreamError(apierrors.NewStreamError("m", true, errors.New("connection refused")))
	if !strings.Contains(got, "Hint: the request did not reach the model, check BASE_URL") {
		t.Errorf("expected connection hint, got %q", got)
	}

	got = formatStreamError(apierrors.NewStreamError("m", false, errors.New("unexpected EOF")))
	if strings.Contains(got, "Hint") {
		t.Errorf("mid-stream failure without status should have no hint, got %q", got)
	}
}
