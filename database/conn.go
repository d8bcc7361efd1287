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
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalMu      sync.RWMutex
	globalFactory *BaseDatabaseFactory
	globalConfig  *Config
)

// GetDB returns the process-wide Bun database, or nil before InitDB.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalFactory != nil {
		return globalFactory.GetDB()
	}
	return nil
}

// GetConfig returns the configuration passed to InitDB.
func GetConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// GetDatabaseFactory returns the global database factory.
func GetDatabaseFactory() *BaseDatabaseFactory {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalFactory
}

// InitDB connects the process-wide database described by cfg.
func InitDB(ctx context.Context, cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	factory := NewDatabaseFactory()
	if _, err := factory.CreateFromConfig(&cfg.ConnectionConfig); err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := factory.InitializeDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	globalMu.Lock()
	old := globalFactory
	globalFactory = factory
	globalConfig = cfg
	globalMu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return factory.GetDB(), nil
}

// CloseDB closes the process-wide database.
func CloseDB() error {
	globalMu.Lock()
	factory := globalFactory
	globalFactory = nil
	globalMu.Unlock()

	if factory != nil {
		return factory.Close()
	}
	return nil
}

// GetHealthStatus returns the current database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if factory := GetDatabaseFactory(); factory != nil {
		return factory.GetHealthStatus(ctx)
	}
	return &HealthStatus{
		LastError: "Database not initialized",
	}
}

// GetDatabaseStats returns global database statistics.
func GetDatabaseStats() *DBStats {
	if factory := GetDatabaseFactory(); factory != nil {
		return factory.GetStats()
	}
	return &DBStats{}
}
