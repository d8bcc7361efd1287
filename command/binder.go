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
	"database/sql"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
)

// Binder turns a Param into a driver argument. The returned collect func,
// when not nil, must run after the statement completes and the rows are
// closed; it copies the driver's output into the Param.
type Binder interface {
	Bind(p *Param) (arg interface{}, collect func())
}

// OutBinder binds every output direction, including the return value, as a
// sql.Out pointing at the Param's Value.
type OutBinder struct{}

func (OutBinder) Bind(p *Param) (interface{}, func()) {
	name := bindName(p.Name)
	if p.Direction == Input {
		return sql.Named(name, p.Value), nil
	}
	return sql.Named(name, sql.Out{Dest: &p.Value, In: p.Direction == InputOutput}), nil
}

// MSSQLBinder binds the return value as the SQL Server RETURN status and
// everything else like OutBinder.
type MSSQLBinder struct {
	OutBinder
}

func (b MSSQLBinder) Bind(p *Param) (interface{}, func()) {
	if p.Direction != ReturnValue {
		return b.OutBinder.Bind(p)
	}
	status := new(mssql.ReturnStatus)
	return status, func() {
		p.Value = int64(*status)
	}
}

func bindName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}

func bindParams(b Binder, params *Params) (args []interface{}, collect func()) {
	var collectors []func()
	for _, p := range params.All() {
		arg, c := b.Bind(p)
		args = append(args, arg)
		if c != nil {
			collectors = append(collectors, c)
		}
	}
	return args, func() {
		for _, c := range collectors {
			c()
		}
	}
}
