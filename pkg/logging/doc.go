// Package logging provides structured logging configuration for mockreg.
//
// It wraps log/slog so the registry, the mock loader and the CLI share one
// logger setup.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	reg := registry.New[*response.Request, *response.Response](registry.WithLogger(logger))
//
// Components accept a *slog.Logger through an option. A nil logger means
// logging is disabled; use OrNop to normalize it.
package logging
