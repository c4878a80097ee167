package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"mooncalendar/config"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger. Output goes to stderr so stdout only
// carries the report.
func Init(cfg config.Config) {
	InitWithOutput(cfg, os.Stderr)
}

// InitWithOutput is Init with an explicit destination.
func InitWithOutput(cfg config.Config, out io.Writer) {
	Log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.SetLevel(logrus.InfoLevel)
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		Log.SetLevel(level)
	}

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
}
