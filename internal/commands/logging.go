package commands

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// logger writes diagnostics to stderr so they never mix with the chat on stdout.
var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// configureLogging applies LOG_LEVEL; --verbose forces debug.
func configureLogging(level string, verbose bool) {
	lvl := logrus.WarnLevel
	if level = strings.TrimSpace(level); level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logger.WithField("value", level).Warn("ignoring invalid LOG_LEVEL")
		} else {
			lvl = parsed
		}
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
}
