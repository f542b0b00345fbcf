package sl

import (
	"io"
	"log/slog"
)

const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"
)

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// New initializes and returns a logger writing to w based on the environment provided.
func New(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case EnvLocal:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case EnvDev:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case EnvProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: "", Value: slog.Value{}}
	}
	return a
}
