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

package command

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tomoncle/sqlutility/types"
)

type Mode int

const (
	NoResultSet Mode = iota
	SingleRecord
	MultipleRecords
)

var _ types.BaseEnum = NoResultSet

func (m Mode) IsValid() bool { return m >= NoResultSet && m <= MultipleRecords }

func (m Mode) Number() int {
	if !m.IsValid() {
		return types.IllegalValue
	}
	return int(m)
}

func (m Mode) Name() string {
	switch m {
	case NoResultSet:
		return "NoResultSet"
	case SingleRecord:
		return "SingleRecord"
	case MultipleRecords:
		return "MultipleRecords"
	default:
		return types.IllegalName
	}
}

func (m Mode) String() string { return m.Name() }

func (m Mode) Desc() string {
	switch m {
	case NoResultSet:
		return "execute without reading rows"
	case SingleRecord:
		return "first row or a default record"
	case MultipleRecords:
		return "every row in driver order"
	default:
		return types.IllegalDesc
	}
}

type CommandType int

const (
	StoredProcedure CommandType = iota
	Text
)

func (t CommandType) String() string {
	if t == Text {
		return "Text"
	}
	return "StoredProcedure"
}

// Command is a single prepared invocation.
type Command struct {
	Text   string
	Type   CommandType
	Params *Params
}

// NewCommand treats target as a procedure name when it contains no
// whitespace and as SQL text otherwise.
func NewCommand(target string, params *Params) *Command {
	if isProcedureName(target) {
		return NewProcedureCommand(target, params)
	}
	return NewTextCommand(target, params)
}

func NewProcedureCommand(name string, params *Params) *Command {
	if params == nil {
		params = NewParams()
	}
	return &Command{Text: strings.TrimSpace(name), Type: StoredProcedure, Params: params}
}

func NewTextCommand(sqlText string, params *Params) *Command {
	if params == nil {
		params = NewParams()
	}
	return &Command{Text: sqlText, Type: Text, Params: params}
}

// Render formats the command for logs. Procedures render as an exec with
// one "@name = value" line per parameter; the return value is omitted.
func (c *Command) Render() string {
	if c.Type != StoredProcedure {
		return c.Text
	}

	var b strings.Builder
	b.WriteString("exec ")
	b.WriteString(c.Text)
	for _, p := range c.Params.All() {
		if p.Direction == ReturnValue {
			continue
		}
		val := "null"
		if p.Value != nil {
			val = fmt.Sprint(p.Value)
		}
		fmt.Fprintf(&b, "\n@%s = %s", strings.TrimPrefix(p.Name, "@"), val)
	}
	return b.String()
}

func isProcedureName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// splitProcedureName returns the schema and bare name of a possibly
// qualified procedure name, with brackets and quotes removed. The schema is
// empty for an unqualified name.
func splitProcedureName(s string) (schema, name string) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	name = unquoteIdentifier(parts[len(parts)-1])
	if len(parts) > 1 {
		schema = unquoteIdentifier(parts[len(parts)-2])
	}
	return schema, name
}

func unquoteIdentifier(s string) string {
	return strings.Trim(strings.TrimSpace(s), "[]\"`")
}
