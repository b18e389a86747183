// Package logger provides the structured logging interface used across nftarchive.
//
// It wraps zerolog with a small field-oriented API. Library packages receive a
// Logger explicitly; only the command layer touches the process-wide instance
// set up by Initialize.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("collection", "cryptoadz").Info("Starting archive")
//	logger.LogImageSaved(log, "Toad #1", "out/Toad #1.png", 2048)
//
// Tests capture messages with NewTestLogger.
package logger
