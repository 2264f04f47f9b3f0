// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"lunar_tracker_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
func Init(cfg *config.AppConfig) {
	configure(Log, os.Stdout, cfg.LogLevel, cfg.Environment)

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
}

func configure(l *logrus.Logger, out io.Writer, levelName, environment string) {
	l.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", levelName, err)
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(level)
	}

	switch strings.ToLower(environment) {
	case "production", "staging":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
