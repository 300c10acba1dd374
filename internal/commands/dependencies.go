package commands

import (
	"io"
	"os"

	"github.com/diogo/rpchat/internal/api"
	"github.com/diogo/rpchat/internal/config"
)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewStreamer builds the completion client from validated settings.
	NewStreamer func(settings *config.Settings) (api.ChatStreamer, error)

	In  io.Reader
	Out io.Writer
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewStreamer: newAPIClient,
		In:          os.Stdin,
		Out:         os.Stdout,
	}
}

func newAPIClient(settings *config.Settings) (api.ChatStreamer, error) {
	return api.NewClient(settings.APIKey, settings.BaseURL, api.WithHeader("X-Title", "rpchat"))
}
