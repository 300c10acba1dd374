package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/rpchat/internal/config"
	"github.com/diogo/rpchat/internal/render"
)

var promptRawFlag bool

// plainStyle is glamour's colorless style, used when the configured one fails to load.
const plainStyle = "notty"

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Inspect the character file",
	Long:  `Show the character loaded from --character and the system prompt built from it.`,
}

var characterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show character details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadCharacter(characterFlag)
		if err != nil {
			return err
		}
		return showCharacter(cmd.OutOrStdout(), c)
	},
}

var characterPromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system prompt built from the character",
	Long: `Print the system prompt sent to the model at the start of every chat.

On a terminal the prompt is rendered as markdown (style from GLAMOUR_STYLE);
use --raw to print it exactly as sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadCharacter(characterFlag)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		return printPrompt(out, c, promptRawFlag || !isTerminal(out), getTerminalWidth(out))
	},
}

func init() {
	characterPromptCmd.Flags().BoolVar(&promptRawFlag, "raw", false, "Print the prompt without markdown rendering")

	characterCmd.AddCommand(characterShowCmd)
	characterCmd.AddCommand(characterPromptCmd)
}

func showCharacter(out io.Writer, c *config.Character) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "NAME\t%s\n", c.Name)
	_, _ = fmt.Fprintf(w, "ROLE\t%s\n", c.Role)
	_, _ = fmt.Fprintf(w, "STYLE\t%s\n", c.Style)
	_, _ = fmt.Fprintf(w, "QUIRKS\t%d\n", len(c.Quirks))
	_, _ = fmt.Fprintf(w, "RELATIONS\t%d\n", len(c.Relations))
	_, _ = fmt.Fprintf(w, "FUN FACTS\t%d\n", len(c.RandomFacts))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(c.Relations) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KNOWS\tRELATION\tROLE")
		_, _ = fmt.Fprintln(w, "-----\t--------\t----")
		for _, r := range c.Relations {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Relation, r.Role)
		}
		return w.Flush()
	}
	return nil
}

// printPrompt writes the system prompt, rendered as markdown unless raw.
// An unusable style falls back to plainStyle, then to the raw text.
func printPrompt(out io.Writer, c *config.Character, raw bool, width int) error {
	prompt := config.SystemPrompt(c)
	if raw {
		_, err := fmt.Fprint(out, prompt)
		return err
	}

	md := fmt.Sprintf("# %s\n\n%s", c.Name, prompt)
	opts := render.OptionsFromEnv(width)
	rendered, err := render.Markdown(md, opts)
	if err != nil && opts.Style != plainStyle {
		logger.WithError(err).WithField("style", opts.Style).Warn("markdown style unavailable, using " + plainStyle)
		rendered, err = render.Markdown(md, opts.WithStyle(plainStyle))
	}
	if err != nil {
		logger.WithError(err).Debug("markdown rendering failed")
		_, err = fmt.Fprint(out, prompt)
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(rendered, "\n"))
	return err
}
