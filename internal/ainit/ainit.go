package ainit

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lthummus/elapsed/internal/config"
)

var loaded bool

func init() {
	var revision string
	info, _ := debug.ReadBuildInfo()
	if info != nil {
		for i := range info.Settings {
			if info.Settings[i].Key == "vcs.revision" {
				revision = info.Settings[i].Value
				break
			}
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	ApplyLevel(zerolog.LevelInfoValue)

	log.Debug().
		Str("arch", runtime.GOARCH).
		Str("os", runtime.GOOS).
		Str("go_version", strings.TrimPrefix(runtime.Version(), "go")).
		Str("git_commit", revision).
		Msg("hello world")

	loaded = true
}

func Loaded() bool {
	return loaded
}

// ApplyLevel sets the global log level. DEBUG_LOG=true always wins and turns on trace logging.
// Unknown levels fall back to info.
func ApplyLevel(level string) zerolog.Level {
	if config.IsDebugLoggingEnabled() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		return zerolog.TraceLevel
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("unknown log level; using info")
		parsed = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(parsed)
	return parsed
}
