// Package logger builds configured log/slog loggers: JSON for production,
// text for development, with level and service tagging driven by options
// or environment configuration.
package logger
