package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/rpchat/internal/api"
	"github.com/diogo/rpchat/internal/config"
)

const testCharacterJSON = `{"name": "Nijika", "role": "drummer", "quirks": ["ahoge"]}`

type harness struct {
	deps   *Dependencies
	out    *bytes.Buffer
	errOut *bytes.Buffer
	mock   *api.MockStreamer
	args   []string
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("BASE_URL", "http://127.0.0.1:1/v1")
	t.Setenv("LLM_MODEL", "test-model")
	t.Setenv("MAX_DESCRIPTION_LENGTH", "200")
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	charPath := filepath.Join(dir, "character.json")
	if err := os.WriteFile(charPath, []byte(testCharacterJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		mock:   &api.MockStreamer{Fragments: []string{"Yo!"}},
		args:   []string{"--character", charPath, "--env-file", filepath.Join(dir, "missing.env")},
	}
	h.deps = &Dependencies{
		NewStreamer: func(*config.Settings) (api.ChatStreamer, error) { return h.mock, nil },
		In:          strings.NewReader(input),
		Out:         h.out,
	}
	return h
}

func (h *harness) run(extra ...string) int {
	return execute(context.Background(), newRootCmd(h.deps), append(h.args, extra...), h.errOut)
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := newRootCmd(NewDependencies())
	if cmd.Use != "rpchat" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}
	if err := cmd.Args(cmd, []string{"unexpected"}); err == nil {
		t.Error("positional arguments should be rejected")
	}
	if f := cmd.PersistentFlags().Lookup("character"); f == nil || f.DefValue != "character.json" {
		t.Errorf("character flag = %+v", f)
	}
}

func TestExecute_ChatExit(t *testing.T) {
	h := newHarness(t, "Bocchi\nhello\nexit\n")

	if code := h.run(); code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "Yo!") {
		t.Errorf("expected streamed reply, got %q", h.out.String())
	}
	if h.mock.LastModel != "test-model" {
		t.Errorf("model = %q", h.mock.LastModel)
	}
	if !strings.Contains(h.mock.LastMessages[0].Content, "You are Nijika, a drummer.") {
		t.Errorf("system prompt not sent: %q", h.mock.LastMessages[0].Content)
	}
}

func TestExecute_InvalidMaxDescriptionLength(t *testing.T) {
	h := newHarness(t, "Bocchi\n")
	t.Setenv("MAX_DESCRIPTION_LENGTH", "abc")

	if code := h.run(); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.errOut.String(), "MAX_DESCRIPTION_LENGTH must be an integer") {
		t.Errorf("stderr = %q", h.errOut.String())
	}
	if h.out.Len() != 0 {
		t.Errorf("nothing should be shown before validation passes, got %q", h.out.String())
	}
}

func TestExecute_MissingEnv(t *testing.T) {
	h := newHarness(t, "Bocchi\n")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("LLM_MODEL", "")

	if code := h.run(); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.errOut.String(), "Missing environment variables: OPENROUTER_API_KEY, LLM_MODEL") {
		t.Errorf("stderr = %q", h.errOut.String())
	}
}

func TestExecute_BadCharacter(t *testing.T) {
	h := newHarness(t, "Bocchi\n")

	code := h.run("--character", filepath.Join(t.TempDir(), "nobody.json"))
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.errOut.String(), "❌ Failed to load character:") {
		t.Errorf("stderr = %q", h.errOut.String())
	}
	if h.mock.Calls != 0 {
		t.Error("no request should be made")
	}
}

func TestExecute_EmptyName(t *testing.T) {
	h := newHarness(t, "\n")

	if code := h.run(); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.errOut.String(), "Name cannot be empty. Exiting.") {
		t.Errorf("stderr = %q", h.errOut.String())
	}
}

func TestExecute_ClientError(t *testing.T) {
	h := newHarness(t, "Bocchi\n")
	h.deps.NewStreamer = func(*config.Settings) (api.ChatStreamer, error) {
		return nil, errors.New("bad base url")
	}

	if code := h.run(); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(h.errOut.String(), "failed to create client: bad base url") {
		t.Errorf("stderr = %q", h.errOut.String())
	}
}

func TestExecute_Version(t *testing.T) {
	h := newHarness(t, "")

	if code := h.run("--version"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(h.out.String(), "rpchat ") {
		t.Errorf("stdout = %q", h.out.String())
	}
}

func TestNewAPIClient(t *testing.T) {
	s := &config.Settings{APIKey: "k", BaseURL: "http://localhost/v1", Model: "m"}
	c, err := newAPIClient(s)
	if err != nil {
		t.Fatalf("newAPIClient() error = %v", err)
	}
	if c.(*api.Client).BaseURL() != "http://localhost/v1" {
		t.Error("base url not applied")
	}
}
