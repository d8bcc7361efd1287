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
	"strconv"
	"strings"

	"github.com/tomoncle/sqlutility/types"
)

// Reserved output parameters every procedure run through this package must
// honor: return_value == FailureReturnValue means the call failed and
// Message explains why.
const (
	MessageParam       = "Message"
	ReturnValueParam   = "return_value"
	FailureReturnValue = 1
)

type Direction int

const (
	Input Direction = iota
	InputOutput
	Output
	ReturnValue
)

var _ types.BaseEnum = Input

func (d Direction) IsValid() bool { return d >= Input && d <= ReturnValue }

func (d Direction) Number() int {
	if !d.IsValid() {
		return types.IllegalValue
	}
	return int(d)
}

func (d Direction) Name() string {
	switch d {
	case Input:
		return "Input"
	case InputOutput:
		return "InputOutput"
	case Output:
		return "Output"
	case ReturnValue:
		return "ReturnValue"
	default:
		return types.IllegalName
	}
}

func (d Direction) String() string { return d.Name() }

func (d Direction) Desc() string {
	switch d {
	case Input:
		return "value sent to the database"
	case InputOutput:
		return "value sent and read back"
	case Output:
		return "value read back"
	case ReturnValue:
		return "procedure return status"
	default:
		return types.IllegalDesc
	}
}

// IsOutput reports whether the driver writes a value back for d.
func (d Direction) IsOutput() bool { return d == InputOutput || d == Output || d == ReturnValue }

// Param is one named argument. After execution the Value of output
// parameters holds what the database returned.
type Param struct {
	Name      string
	Value     interface{}
	Direction Direction
}

// Params is an ordered parameter bag. Names are matched case-insensitively
// and a leading '@' is ignored.
type Params struct {
	items []*Param
}

func NewParams() *Params {
	return &Params{items: make([]*Param, 0)}
}

// Add sets an input parameter.
func (p *Params) Add(name string, value interface{}) *Params {
	return p.AddWithDirection(name, value, Input)
}

// AddWithDirection sets a parameter. An existing parameter with the same
// name keeps its position and takes the new value and direction.
func (p *Params) AddWithDirection(name string, value interface{}, direction Direction) *Params {
	if existing, ok := p.Get(name); ok {
		existing.Value = value
		existing.Direction = direction
		return p
	}
	p.items = append(p.items, &Param{Name: name, Value: value, Direction: direction})
	return p
}

func (p *Params) Get(name string) (*Param, bool) {
	if p == nil {
		return nil, false
	}
	key := paramKey(name)
	for _, item := range p.items {
		if paramKey(item.Name) == key {
			return item, true
		}
	}
	return nil, false
}

// Value returns the named parameter's current value, or nil.
func (p *Params) Value(name string) interface{} {
	if item, ok := p.Get(name); ok {
		return item.Value
	}
	return nil
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// All returns the parameters in insertion order.
func (p *Params) All() []*Param {
	if p == nil {
		return nil
	}
	out := make([]*Param, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Params) Names() []string {
	names := make([]string, 0, p.Len())
	for _, item := range p.All() {
		names = append(names, item.Name)
	}
	return names
}

// AddReserved (re)sets Message and return_value to their initial state.
func (p *Params) AddReserved() *Params {
	p.AddWithDirection(MessageParam, "", InputOutput)
	return p.AddWithDirection(ReturnValueParam, nil, ReturnValue)
}

// Message returns the Message output as text.
func (p *Params) Message() string {
	switch v := p.Value(MessageParam).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// ReturnValue returns the return_value output. ok is false when the
// parameter is absent, unset, or not an integer.
func (p *Params) ReturnValue() (value int, ok bool) {
	return toInt(p.Value(ReturnValueParam))
}

func paramKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case []byte:
		i, err := strconv.Atoi(strings.TrimSpace(string(n)))
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
