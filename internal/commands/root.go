// Package commands provides CLI commands for rpchat.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/rpchat/internal/models"
)

var (
	// Global flags
	characterFlag string
	envFileFlag   string
	verboseFlag   bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = newRootCmd(NewDependencies())

func newRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpchat",
		Short: "Roleplay chat with a character over an OpenAI-compatible API",
		Long: `rpchat loads a character from a JSON or YAML file, builds a system prompt
from it and chats with you in character, streaming replies as they arrive.

Configuration is read from the environment or a .env file:
  OPENROUTER_API_KEY      API key
  BASE_URL                API endpoint, e.g. https://openrouter.ai/api/v1
  LLM_MODEL               model identifier
  MAX_DESCRIPTION_LENGTH  integer
  LOG_LEVEL               optional log level (debug, info, warn, error)

Type 'exit' or 'quit' (any case), or press Ctrl+C, to leave the chat.

Examples:
  rpchat                              Chat with ./character.json
  rpchat -c ryo.yaml                  Chat with another character
  rpchat character prompt --raw       Print the system prompt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "rpchat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(cmd.Context(), deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&characterFlag, "character", "c", models.DefaultCharacterPath, "Path to the character file (.json, .yaml)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging on stderr")
	cmd.Flags().StringVar(&envFileFlag, "env-file", models.DefaultEnvFile, "Environment file to load before validation")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	if deps.Out != nil {
		cmd.SetOut(deps.Out)
	}

	cmd.AddCommand(characterCmd)
	return cmd
}

// Execute runs the root command and exits with status 1 on startup failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, rootCmd, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs cmd with args and maps the outcome to an exit status.
func execute(ctx context.Context, cmd *cobra.Command, args []string, errOut io.Writer) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, formatErrorMessage(err))
		return 1
	}
	return 0
}
