// Package database provides connection management, configuration loading,
// driver error classification, health checks and logging for the command
// executor, built on top of Bun.
package database
