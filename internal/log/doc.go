// Package log provides the run logger of simcheck, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Clipping of long string values such as extracted document text
//   - An append-only log file next to the terminal output
//   - Configurable log levels with verbose mode support
//
// # Clipping
//
// The comparison engine logs the raw text of every compared pair at debug
// level. Documents can be tens of kilobytes, so the ClipHandler shortens every
// string attribute above a limit and appends the original length:
//
//	logger := slog.New(log.NewClipHandler(handler, 200))
//	logger.Debug("comparing", "first_text", text) // first_text="Lorem ip…[+18312 bytes]"
//
// # Usage
//
//	logger, closer, err := log.NewRunLogger("textsimilarity.log", os.Stderr, verbose)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//	slog.SetDefault(logger)
package log
