// Package slog provides logging decorators for vipbot services.
package slog
