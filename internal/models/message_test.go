package models

import "testing"

func TestNewHistory(t *testing.T) {
	h := NewHistory("You are Nijika.")

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	msgs := h.Messages()
	if msgs[0].Role != RoleSystem {
		t.Errorf("first role = %s, want system", msgs[0].Role)
	}
	if h.SystemPrompt() != "You are Nijika." {
		t.Errorf("SystemPrompt() = %q", h.SystemPrompt())
	}
}

func TestHistory_TurnsKeepSystemFirst(t *testing.T) {
	h := NewHistory("sys")
	h.AddUser("hi")
	h.AddAssistant("hello!")
	h.AddUser("again")
	h.AddAssistant("")

	msgs := h.Messages()
	want := []Role{RoleSystem, RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	if len(msgs) != len(want) {
		t.Fatalf("len = %d, want %d", len(msgs), len(want))
	}
	for i, r := range want {
		if msgs[i].Role != r {
			t.Errorf("msgs[%d].Role = %s, want %s", i, msgs[i].Role, r)
		}
	}
	if msgs[0].Content != "sys" {
		t.Errorf("system message changed: %q", msgs[0].Content)
	}
	if h.Turns() != 2 {
		t.Errorf("Turns() = %d, want 2", h.Turns())
	}
}

func TestHistory_MessagesIsCopy(t *testing.T) {
	h := NewHistory("sys")
	msgs := h.Messages()
	msgs[0].Content = "tampered"

	if h.SystemPrompt() != "sys" {
		t.Error("mutating the returned slice must not touch the history")
	}
}

func TestRoleEmoji(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "🧑‍💻"},
		{RoleAssistant, "🎸"},
		{RoleSystem, ""},
		{Role("tool"), ""},
	}
	for _, tt := range tests {
		if got := tt.role.Emoji(); got != tt.want {
			t.Errorf("%s.Emoji() = %q, want %q", tt.role, got, tt.want)
		}
	}
}
