// Package log provides the logging abstraction used by chatshell components.
//
// Components depend on the Logger interface only. The process wires in the
// zerolog adapter; tests use the no-op logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("dev server listening", log.String("addr", addr))
//
//	logger := log.NewNoopLogger()
package log
