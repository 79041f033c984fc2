// Package logger builds configured log/slog loggers for the notification
// job: JSON output for production log aggregation, text output for local
// development, with static service/env attributes stamped on every record.
//
//	log := logger.New(logger.WithEnvironment(cfg.Environment, "compact-notify"))
//	logger.SetAsDefault(log)
package logger
