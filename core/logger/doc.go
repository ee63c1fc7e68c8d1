// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for a batch CLI tool.
//
// # Run Correlation
//
// Every pipeline invocation is stamped with a run identifier. The WithRun
// helper attaches it to the log entry so that all logs belonging to one batch
// run can be correlated after the fact.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Pipeline started")
//
//	l := logger.WithRun(log, runID)
//	l.Error("Extraction failed", zap.Error(err))
package logger
