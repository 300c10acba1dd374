package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/diogo/rpchat/internal/api"
	"github.com/diogo/rpchat/internal/config"
	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

const (
	welcomeMessage     = "🎤 Welcome to the Roleplay Chat CLI!"
	namePrompt         = "Enter your name: "
	farewellMessage    = "👋 Exiting chat. Bye!"
	interruptedMessage = "👋 Chat interrupted."
)

// runChat validates the environment, loads the character and runs the chat.
func runChat(ctx context.Context, deps *Dependencies) error {
	settings, err := config.LoadSettings(envFileFlag)
	if err != nil {
		return err
	}
	configureLogging(settings.LogLevel, verboseFlag)
	logger.WithFields(logrus.Fields{
		"model":    settings.Model,
		"base_url": settings.BaseURL,
	}).Debug("settings loaded")

	client, err := deps.NewStreamer(settings)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	character, err := config.LoadCharacter(characterFlag)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"path":      characterFlag,
		"character": character.Name,
	}).Debug("character loaded")

	loop := newChatLoop(client, settings.Model, character, deps.In, deps.Out)
	return loop.run(ctx)
}

// chatLoop is the interactive REPL. It owns the conversation history.
type chatLoop struct {
	character *config.Character
	session   *chatSession
	in        io.Reader
	out       io.Writer

	lines    <-chan string
	userName string
	history  *models.History
}

func newChatLoop(client api.ChatStreamer, model string, character *config.Character, in io.Reader, out io.Writer) *chatLoop {
	return &chatLoop{
		character: character,
		in:        in,
		out:       out,
		session: &chatSession{
			client:         client,
			model:          model,
			assistantName:  character.Name,
			out:            out,
			typingInterval: models.TypingInterval,
		},
	}
}

// run drives the session until exit, end of input or interrupt.
// It only returns an error for an empty user name.
func (l *chatLoop) run(ctx context.Context) error {
	// readCtx ends with run so the reader never outlives the loop.
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	l.lines = readLines(readCtx, l.in)

	fmt.Fprintln(l.out, welcomeMessage)
	fmt.Fprint(l.out, namePrompt)

	name, err := l.readLine(ctx)
	if ctx.Err() != nil {
		l.farewell(interruptedMessage)
		return nil
	}
	if err != nil {
		// no input at all counts as an empty name
		fmt.Fprintln(l.out)
	}
	l.userName = strings.TrimSpace(name)
	if l.userName == "" {
		return apierrors.ErrEmptyUserName
	}

	l.history = models.NewHistory(config.SystemPrompt(l.character))
	logger.WithFields(logrus.Fields{
		"user":          l.userName,
		"prompt_length": len(l.history.SystemPrompt()),
	}).Debug("session started")

	for {
		fmt.Fprint(l.out, userLabelStyle.Render(fmt.Sprintf("%s %s:", models.RoleUser.Emoji(), l.userName))+" ")

		line, err := l.readLine(ctx)
		if ctx.Err() != nil {
			l.farewell(interruptedMessage)
			return nil
		}
		if err != nil {
			fmt.Fprintln(l.out)
			fmt.Fprintln(l.out, farewellMessage)
			return nil
		}

		if isExitCommand(line) {
			fmt.Fprintln(l.out, farewellMessage)
			return nil
		}

		l.history.AddUser(line)
		reply := l.session.send(ctx, l.history)
		l.history.AddAssistant(reply)

		if ctx.Err() != nil {
			l.farewell(interruptedMessage)
			return nil
		}
	}
}

func (l *chatLoop) farewell(msg string) {
	fmt.Fprintf(l.out, "\n%s\n", msg)
}

// readLine waits for the next input line. It returns io.EOF when input is
// exhausted and the context error on interrupt.
func (l *chatLoop) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// readLines feeds input lines to a channel so reads can be abandoned on interrupt.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.WithError(err).Warn("stdin read error")
		}
	}()
	return ch
}

// isExitCommand matches the whole line ignoring case; padded input is sent as a turn.
func isExitCommand(line string) bool {
	for _, cmd := range models.ExitCommands {
		if strings.EqualFold(line, cmd) {
			return true
		}
	}
	return false
}
