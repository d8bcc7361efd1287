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
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix selects the environment variables overlaid onto a loaded
// config. A double underscore separates nesting levels:
// SQLUTIL_CONNECTION__HOST sets connection.host.
const EnvPrefix = "SQLUTIL_"

// LoadConfig builds a Config from defaults, the optional YAML file at path,
// and SQLUTIL_ environment variables, in that order of precedence, and
// validates the result. envFiles are loaded into the process environment
// first; missing files are an error.
func LoadConfig(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := overlayEnv(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks the struct constraints declared on Config.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("database configuration cannot be empty")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	return nil
}

func overlayEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to apply environment config: %w", err)
	}
	return nil
}
