// Package logger configures the global zerolog logger from command line
// flags.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds the logging flags shared by every command.
type Logger struct {
	Level   string `long:"log-level"    env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"disabled" default:"info"`
	Format  string `long:"log-format"   env:"LOG_FORMAT" description:"Log output format" choice:"console" choice:"json" default:"console"`
	NoColor bool   `long:"log-no-color" env:"NO_COLOR"   description:"Disable colored console output"`
}

// Setup applies the level and installs a logger writing to stderr as the
// global log.Logger.
func (l Logger) Setup() {
	zerolog.SetGlobalLevel(l.level())
	log.Logger = l.New(os.Stderr)
}

// New builds a logger writing to w in the configured format. The level is
// not set; Setup applies it globally.
func (l Logger) New(w io.Writer) zerolog.Logger {
	if l.Format == "json" {
		return zerolog.New(w).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    l.NoColor,
		TimeFormat: time.DateTime,
	}).With().Timestamp().Logger()
}

func (l Logger) level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
