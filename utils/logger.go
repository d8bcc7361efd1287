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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger

const defaultTimestampFormat = "2006-01-02 15:04:05.000"

var (
	defaultLevel     = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	consoleLogFormat = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
	consoleOutput    io.Writer = os.Stdout
)

// ConfigureConsoleLogFormat switches newly created loggers between "text"
// and "json" output.
func ConfigureConsoleLogFormat(format string) {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		consoleLogFormat = "json"
	} else {
		consoleLogFormat = "text"
	}
}

// ConfigureConsoleOutput redirects newly created loggers. A nil writer
// restores stdout.
func ConfigureConsoleOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	consoleOutput = w
}

func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

func RegisterLogger(name string, l *logrus.Logger) {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	loggerRegistry[name] = l
}

// LookupLogger returns a logger previously created with NewLogger.
func LookupLogger(name string) (*logrus.Logger, bool) {
	loggerRegistryMu.RLock()
	defer loggerRegistryMu.RUnlock()
	l, ok := loggerRegistry[name]
	return l, ok
}

func SetLoggerLevel(name string, lvlStr string) bool {
	lg, ok := LookupLogger(name)
	if !ok {
		return false
	}
	lg.SetLevel(ParseLogLevel(lvlStr))
	return true
}

// ConfigureLogLevel sets the level of every registered logger and of
// loggers created afterwards.
func ConfigureLogLevel(levelStr string) {
	lvl := ParseLogLevel(levelStr)
	defaultLevel = lvl
	loggerRegistryMu.RLock()
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
	loggerRegistryMu.RUnlock()
}

// NewLogger creates and registers a named logger. Calling it twice with the
// same name returns the registered instance.
func NewLogger(name string) *logrus.Logger {
	if l, ok := LookupLogger(name); ok {
		return l
	}
	l := logrus.New()
	l.SetOutput(consoleOutput)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	if consoleLogFormat == "json" {
		l.SetFormatter(&JSONLogFormatter{LoggerName: name})
	} else {
		l.SetFormatter(&Log4jColorFormatter{LoggerName: name, NameWidth: 10})
	}
	RegisterLogger(name, l)
	return l
}

type Log4jColorFormatter struct {
	LoggerName      string
	TimestampFormat string
	NameWidth       int
}

func (f *Log4jColorFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	ts := entry.Time.Format(tsFormat(f.TimestampFormat))
	lvl := colorLevel(padLeft(strings.ToUpper(entry.Level.String()), 7), entry.Level)
	pid := color.MagentaString("%-6d", os.Getpid())
	name := color.CyanString(padLeft(limitRunes(f.LoggerName, f.NameWidth), f.NameWidth))

	caller := ""
	if entry.Caller != nil {
		caller = " " + color.New(color.Faint).Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s - %s%s : %s", ts, lvl, pid, name, caller, entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

type JSONLogFormatter struct {
	LoggerName      string
	TimestampFormat string
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	type jsonLogRecord struct {
		Time    string                 `json:"time"`
		Level   string                 `json:"level"`
		Model   string                 `json:"model"`
		Caller  string                 `json:"caller,omitempty"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields,omitempty"`
	}

	rec := jsonLogRecord{
		Time:    entry.Time.Format(tsFormat(f.TimestampFormat)),
		Level:   strings.ToLower(entry.Level.String()),
		Model:   f.LoggerName,
		Message: entry.Message,
	}
	if entry.Caller != nil {
		rec.Caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	if len(entry.Data) > 0 {
		rec.Fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			rec.Fields[k] = v
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func tsFormat(f string) string {
	if f != "" {
		return f
	}
	return defaultTimestampFormat
}

func colorLevel(s string, level logrus.Level) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.RedString(s)
	case logrus.WarnLevel:
		return color.YellowString(s)
	case logrus.InfoLevel:
		return color.GreenString(s)
	case logrus.DebugLevel:
		return color.BlueString(s)
	default:
		return color.MagentaString(s)
	}
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func padLeft(s string, width int) string { return fmt.Sprintf("%"+strconv.Itoa(width)+"s", s) }

func limitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Since formats the elapsed time for log fields.
func Since(start time.Time) string {
	return time.Since(start).Round(time.Microsecond).String()
}

func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return def
}
