package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/diogo/rpchat/internal/api"
	apierrors "github.com/diogo/rpchat/internal/errors"
	"github.com/diogo/rpchat/internal/models"
)

// chatSession performs one streamed exchange per call to send.
type chatSession struct {
	client         api.ChatStreamer
	model          string
	assistantName  string
	out            io.Writer
	typingInterval time.Duration
}

// send streams the reply to history and returns its full text.
// Failures are printed and yield "", so the caller always gets a reply to record.
//
// The typing indicator is stopped as soon as the request is accepted, not on
// the first fragment, so a slow first fragment shows an empty line for a while.
func (s *chatSession) send(ctx context.Context, history *models.History) string {
	log := logger.WithFields(logrus.Fields{
		"model":    s.model,
		"turn":     history.Turns(),
		"messages": history.Len(),
	})
	startTime := time.Now()

	indicator := newTypingIndicator(s.out, s.assistantName, s.typingInterval)
	indicator.start()

	stream, err := s.client.StreamChat(ctx, s.model, history.Messages())
	indicator.stop()
	if err != nil {
		se := s.streamError(true, err)
		s.reportError(ctx, se)
		log.WithError(se).WithField("opening", se.Opening).Debug("stream failed to open")
		return ""
	}
	defer stream.Close()
	log.WithField("latency", time.Since(startTime).Round(time.Millisecond)).Debug("stream opened")

	label := fmt.Sprintf("%s %s:", models.RoleAssistant.Emoji(), s.assistantName)
	fmt.Fprint(s.out, assistantLabelStyle.Render(label)+" ")

	var reply strings.Builder
	fragments := 0
	for {
		text, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			se := s.streamError(false, err)
			s.reportError(ctx, se)
			log.WithError(se).WithFields(logrus.Fields{
				"opening":   se.Opening,
				"fragments": fragments,
			}).Debug("stream broke")
			return ""
		}
		if text == "" {
			continue
		}
		fmt.Fprint(s.out, text)
		reply.WriteString(text)
		fragments++
	}
	fmt.Fprint(s.out, "\n\n")

	log.WithFields(logrus.Fields{
		"fragments": fragments,
		"chars":     reply.Len(),
		"duration":  time.Since(startTime).Round(time.Millisecond),
	}).Debug("stream complete")

	return reply.String()
}

// streamError returns err as a StreamError, wrapping errors from clients that
// do not produce one themselves.
func (s *chatSession) streamError(opening bool, err error) *apierrors.StreamError {
	if se, ok := apierrors.AsStreamError(err); ok {
		return se
	}
	return apierrors.NewStreamError(s.model, opening, err)
}

// reportError prints a streaming failure on its own line. Failures caused by
// an interrupt are left to the chat loop, which prints the farewell.
func (s *chatSession) reportError(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	fmt.Fprintf(s.out, "\n%s\n", formatStreamError(err))
}
