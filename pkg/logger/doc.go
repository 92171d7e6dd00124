// Package logger builds the slog loggers used by the validator, the HTTP
// gate and the command-line tool.
//
// New returns a *slog.Logger configured through Option functions: output
// format (json or text), minimum level, static attributes and context
// extractors. Every logger carries a decorator that copies the validation run
// id stored with WithRunID into each record, so all lines of one run can be
// correlated without threading the id through every call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(logger.Component("csvschema")),
//	)
//
//	ctx := logger.WithRunID(context.Background(), runID)
//	log.InfoContext(ctx, "csv rejected",
//	    logger.File("users.csv"),
//	    logger.Row(42),
//	    logger.Rule("null_field"),
//	)
//
// Discard returns a logger that drops everything; it is the default for
// library components that were not handed a logger.
//
// # Error Handling
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
