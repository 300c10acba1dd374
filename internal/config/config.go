// Package config handles environment settings and character files for rpchat.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

// Settings holds the validated startup configuration
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxDescriptionLength is validated at startup but not used by the chat.
	MaxDescriptionLength int
	LogLevel             string
}

// LoadEnvFile loads variables from envFile into the process environment.
// Variables already set in the environment are not overwritten, and a
// missing file is not an error.
func LoadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// LoadSettings sources envFile (if present) and validates the environment.
func LoadSettings(envFile string) (*Settings, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	return SettingsFromEnv(os.Getenv)
}

// SettingsFromEnv validates the required variables using lookup.
// All missing variables are reported together.
func SettingsFromEnv(lookup func(string) string) (*Settings, error) {
	var missing []string
	for _, name := range models.RequiredEnv {
		if strings.TrimSpace(lookup(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apierrors.NewMissingEnvError(missing...)
	}

	raw := strings.TrimSpace(lookup(models.EnvMaxDescriptionLength))
	maxLen, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierrors.NewInvalidEnvError(
			models.EnvMaxDescriptionLength,
			models.EnvMaxDescriptionLength+" must be an integer",
			err,
		)
	}

	return &Settings{
		APIKey:               lookup(models.EnvAPIKey),
		BaseURL:              lookup(models.EnvBaseURL),
		Model:                lookup(models.EnvModel),
		MaxDescriptionLength: maxLen,
		LogLevel:             lookup(models.EnvLogLevel),
	}, nil
}
