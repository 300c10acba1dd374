// Package models contains data types and constants shared by the chat client.
package models

import "time"

// Environment variables read at startup
const (
	EnvAPIKey               = "OPENROUTER_API_KEY"
	EnvBaseURL              = "BASE_URL"
	EnvModel                = "LLM_MODEL"
	EnvMaxDescriptionLength = "MAX_DESCRIPTION_LENGTH"
	EnvLogLevel             = "LOG_LEVEL"
)

// RequiredEnv lists the variables that must be set, in reporting order.
var RequiredEnv = []string{
	EnvAPIKey,
	EnvBaseURL,
	EnvModel,
	EnvMaxDescriptionLength,
}

// Defaults
const (
	DefaultCharacterPath = "character.json"
	DefaultEnvFile       = ".env"
	TypingInterval       = 500 * time.Millisecond
)

// Fallback text used when a character omits a field
const (
	UnknownName        = "Unknown"
	NoQuirks           = "None specified"
	NoRelations        = "No relationships specified."
	UnknownPersonality = "N/A"
)

// Reserved inputs that end the chat (compared case-insensitively)
var ExitCommands = []string{"exit", "quit"}
