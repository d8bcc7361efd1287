/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// AbstractDatabaseManager owns one pooled connection handle.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetDB() *bun.DB
	GetSQLDB() *sql.DB
	GetStats() *DBStats
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql stats returned by the manager.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes how to reach the database. DSN, when set, is
// handed to the driver untouched and the discrete fields are ignored.
type ConnectionConfig struct {
	Type            string        `json:"type" yaml:"type" koanf:"type" validate:"required,oneof=mssql sqlserver mysql postgres postgresql sqlite sqlite3"`
	DSN             string        `json:"dsn" yaml:"dsn" koanf:"dsn"`
	Host            string        `json:"host" yaml:"host" koanf:"host"`
	Port            int           `json:"port" yaml:"port" koanf:"port" validate:"gte=0,lte=65535"`
	Username        string        `json:"username" yaml:"username" koanf:"username"`
	Password        string        `json:"password" yaml:"password" koanf:"password"`
	DBName          string        `json:"dbname" yaml:"dbname" koanf:"dbname" validate:"required_without=DSN"`
	SSLMode         string        `json:"sslmode" yaml:"sslmode" koanf:"sslmode"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns" koanf:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns" koanf:"max_open_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time" koanf:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `json:"connect_timeout" yaml:"connect_timeout" koanf:"connect_timeout"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" koanf:"write_timeout"`
	EnableQueryLog  bool          `json:"enable_query_log" yaml:"enable_query_log" koanf:"enable_query_log"`
	SlowQueryTime   time.Duration `json:"slow_query_time" yaml:"slow_query_time" koanf:"slow_query_time"`
}

// ExecutorConfig tunes command execution logging.
type ExecutorConfig struct {
	LogCommands     bool          `json:"log_commands" yaml:"log_commands" koanf:"log_commands"`
	SlowCommandTime time.Duration `json:"slow_command_time" yaml:"slow_command_time" koanf:"slow_command_time"`
}

// Config aggregates connection and executor settings.
type Config struct {
	ConnectionConfig ConnectionConfig `json:"connection" yaml:"connection" koanf:"connection"`
	ExecutorConfig   ExecutorConfig   `json:"executor" yaml:"executor" koanf:"executor"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute * 30,
		ConnectTimeout:  time.Second * 10,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		EnableQueryLog:  false,
		SlowQueryTime:   time.Second * 2,
	}
}

// DefaultConfig returns a Config whose connection part carries
// DefaultConnectionConfig values.
func DefaultConfig() *Config {
	return &Config{
		ConnectionConfig: *DefaultConnectionConfig(),
		ExecutorConfig: ExecutorConfig{
			LogCommands:     true,
			SlowCommandTime: time.Second * 2,
		},
	}
}
