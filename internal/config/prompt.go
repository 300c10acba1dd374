package config

import (
	"fmt"
	"strings"

	"github.com/diogo/rpchat/internal/models"
)

const closingInstruction = "Your goal is to respond naturally in-character as %s. " +
	"Always reflect your quirks, style, and personality when speaking. " +
	"Use emojis freely if it fits your tone. Never break character under any circumstance.\n"

// SystemPrompt renders the system prompt for a character.
// The same character always yields the same prompt.
func SystemPrompt(c *Character) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, a %s.\n\n", c.Name, c.Role)
	fmt.Fprintf(&sb, "Your personality traits: %s\n", c.Personality)
	fmt.Fprintf(&sb, "Background: %s\n", c.Background)
	fmt.Fprintf(&sb, "Speaking style: %s\n\n", c.Style)

	sb.WriteString("Quirks and behavioral traits:\n")
	sb.WriteString(formatQuirks(c.Quirks))
	sb.WriteString("\n\n")

	sb.WriteString("People you know:\n")
	sb.WriteString(formatRelations(c.Relations))
	sb.WriteString("\n\n")

	if len(c.RandomFacts) > 0 {
		sb.WriteString("Fun facts:\n")
		sb.WriteString(bulletList(c.RandomFacts))
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, closingInstruction, c.Name)
	return sb.String()
}

func formatQuirks(quirks []string) string {
	if len(quirks) == 0 {
		return models.NoQuirks
	}
	return bulletList(quirks)
}

func formatRelations(relations []Relation) string {
	if len(relations) == 0 {
		return models.NoRelations
	}
	lines := make([]string, len(relations))
	for i, r := range relations {
		lines[i] = fmt.Sprintf("- %s (%s): %s. Personality: %s", r.Name, r.Relation, r.Role, r.Personality)
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
