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

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"DEBUG", logrus.DebugLevel},
		{"", logrus.InfoLevel},
		{" warning ", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerIsRegistered(t *testing.T) {
	l := NewLogger("UTILS_TEST")
	if again := NewLogger("UTILS_TEST"); again != l {
		t.Fatal("expected NewLogger to return the registered instance")
	}
	if !SetLoggerLevel("UTILS_TEST", "error") {
		t.Fatal("expected SetLoggerLevel to find the logger")
	}
	if l.GetLevel() != logrus.ErrorLevel {
		t.Errorf("expected error level, got %v", l.GetLevel())
	}
	if SetLoggerLevel("NOT_REGISTERED", "debug") {
		t.Error("expected SetLoggerLevel to report a missing logger")
	}
}

func TestLog4jColorFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 10})
	l.WithField("procedure", "dbo.PersonGet").Info("executing")

	out := buf.String()
	if !strings.Contains(out, "executing") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "procedure=dbo.PersonGet") {
		t.Errorf("expected field in output, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestJSONLogFormatter(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&JSONLogFormatter{LoggerName: "DATABASE"})
	l.WithField("error", errors.New("boom")).Warn("failed")

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if rec["level"] != "warning" {
		t.Errorf("expected level warning, got %v", rec["level"])
	}
	if rec["model"] != "DATABASE" {
		t.Errorf("expected model DATABASE, got %v", rec["model"])
	}
	fields, ok := rec["fields"].(map[string]interface{})
	if !ok || fields["error"] != "boom" {
		t.Errorf("expected error field rendered as text, got %v", rec["fields"])
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_TEST_STRING", "value")
	t.Setenv("UTILS_TEST_BOOL", "true")
	if got := EnvDefaultString("UTILS_TEST_STRING", "def"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := EnvDefaultString("UTILS_TEST_MISSING", "def"); got != "def" {
		t.Errorf("expected def, got %q", got)
	}
	if !EnvDefaultBool("UTILS_TEST_BOOL", false) {
		t.Error("expected true")
	}
	if !EnvDefaultBool("UTILS_TEST_MISSING", true) {
		t.Error("expected default true")
	}
}
