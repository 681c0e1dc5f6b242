// log package provides the process logger, a zerolog logger writing to
// stderr. Debug messages are only shown in verbose mode, use the -v flag.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger zerolog.Logger
	output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
)

func init() {
	logger = zerolog.New(output).With().Timestamp().Logger().Level(zerolog.WarnLevel)
}

// GetLogger returns the process logger.
func GetLogger() *zerolog.Logger {
	return &logger
}

// SetVerbose sets the verbose mode.
func SetVerbose(v bool) {
	if v {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.WarnLevel)
	}
}

// SetFile sends the logs to filename instead of stderr, rotating the file
// when it reaches maxSize megabytes. An empty filename restores stderr.
func SetFile(filename string, maxSize, maxBackups int) {
	if filename == "" {
		output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	} else {
		output = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		}
	}
	logger = logger.Output(output)
}

// SetOutput sends the logs to w, mostly for tests.
func SetOutput(w io.Writer) {
	output = w
	logger = logger.Output(w)
}
