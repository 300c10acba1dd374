package models

// Role identifies the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Emoji returns the display icon for a role, or "" for roles without one.
func (r Role) Emoji() string {
	switch r {
	case RoleUser:
		return "🧑‍💻"
	case RoleAssistant:
		return "🎸"
	default:
		return ""
	}
}

// Message represents a single chat message sent to the completion API
type Message struct {
	Role    Role
	Content string
}

// History is the ordered message log of one chat session.
// The first message is always the system prompt and is never modified.
type History struct {
	messages []Message
}

// NewHistory starts a history with the given system prompt.
func NewHistory(systemPrompt string) *History {
	return &History{
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// AddUser appends a user message.
func (h *History) AddUser(content string) {
	h.messages = append(h.messages, Message{Role: RoleUser, Content: content})
}

// AddAssistant appends an assistant message. An empty reply is still recorded
// so that every user message is followed by an answer.
func (h *History) AddAssistant(content string) {
	h.messages = append(h.messages, Message{Role: RoleAssistant, Content: content})
}

// Messages returns a copy of the log, safe to hand to a request.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages including the system prompt.
func (h *History) Len() int {
	return len(h.messages)
}

// SystemPrompt returns the content of the leading system message.
func (h *History) SystemPrompt() string {
	return h.messages[0].Content
}

// Turns returns the number of user messages sent so far.
func (h *History) Turns() int {
	n := 0
	for _, m := range h.messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}
