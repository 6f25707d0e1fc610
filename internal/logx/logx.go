package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger. console=true gives the human-readable
// writer, otherwise one JSON object per line.
func New(level string, console bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, console)
}

func NewWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if console {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			short := file
			for i := len(file) - 1; i > 0; i-- {
				if file[i] == '/' {
					short = file[i+1:]
					break
				}
			}
			return fmt.Sprintf("%-20s", fmt.Sprintf("%s:%d", short, line))
		}
		return zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
