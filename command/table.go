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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomoncle/sqlutility/types"
)

const (
	deriveParametersSelect = `SELECT PARAMETER_NAME AS parameter_name, PARAMETER_MODE AS parameter_mode
FROM INFORMATION_SCHEMA.PARAMETERS
WHERE SPECIFIC_NAME = ? AND PARAMETER_NAME IS NOT NULL AND PARAMETER_NAME <> ''`
	deriveParametersSchema = "\nAND SPECIFIC_SCHEMA = ?"
	deriveParametersOrder  = "\nORDER BY ORDINAL_POSITION"
)

// deriveParametersQuery narrows the lookup to the schema when the
// procedure name is qualified.
func deriveParametersQuery(procName string) (string, []interface{}) {
	schema, name := splitProcedureName(procName)
	query := deriveParametersSelect
	args := []interface{}{name}
	if schema != "" {
		query += deriveParametersSchema
		args = append(args, schema)
	}
	return query + deriveParametersOrder, args
}

type parameterDefinition struct {
	ParameterName string `bun:"parameter_name"`
	ParameterMode string `bun:"parameter_mode"`
}

func (d parameterDefinition) direction() Direction {
	switch strings.ToUpper(strings.TrimSpace(d.ParameterMode)) {
	case "INOUT":
		return InputOutput
	case "OUT":
		return Output
	default:
		return Input
	}
}

// GetSQLCommand prepares a procedure command whose parameters are the
// procedure's declared ones, all unset.
func (e *Executor) GetSQLCommand(ctx context.Context, procName string) (*Command, error) {
	cmd := NewProcedureCommand(procName, nil)
	if err := e.DeriveParameters(ctx, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// DeriveParameters replaces cmd.Params with return_value followed by the
// procedure's declared parameters in ordinal order.
func (e *Executor) DeriveParameters(ctx context.Context, cmd *Command) error {
	if e == nil || e.db == nil {
		return ErrNoDatabase
	}
	var defs []parameterDefinition
	query, args := deriveParametersQuery(cmd.Text)
	if err := e.db.NewRaw(query, args...).Scan(ctx, &defs); err != nil {
		return fmt.Errorf("derive parameters for %s: %w", cmd.Text, err)
	}

	params := NewParams().AddWithDirection(ReturnValueParam, nil, ReturnValue)
	for _, d := range defs {
		params.AddWithDirection(d.ParameterName, nil, d.direction())
	}
	cmd.Params = params
	return nil
}

// GetDataTable runs cmd and loads every row. Procedure commands without
// parameters get them derived first. The return code is only checked when
// return_value is bound and came back set.
func (e *Executor) GetDataTable(ctx context.Context, cmd *Command) (*types.DataTable, error) {
	if e == nil || e.db == nil {
		return nil, ErrNoDatabase
	}
	if cmd.Type == StoredProcedure && cmd.Params.Len() == 0 {
		if err := e.DeriveParameters(ctx, cmd); err != nil {
			return nil, err
		}
	}
	if cmd.Params == nil {
		cmd.Params = NewParams()
	}

	start := time.Now()
	if e.logCommands {
		e.logger.Debug("load table", "sql", cmd.Render())
	}
	table, err := e.loadTable(ctx, cmd)
	e.observe(cmd, start, err)
	return table, err
}

func (e *Executor) loadTable(ctx context.Context, cmd *Command) (*types.DataTable, error) {
	conn, err := e.acquire(ctx, cmd)
	if err != nil {
		return nil, tableError(cmd, err)
	}
	defer conn.Close()

	args, collect := bindParams(e.binder, cmd.Params)
	rows, err := conn.QueryContext(ctx, cmd.Text, args...)
	if err != nil {
		return nil, tableError(cmd, e.translate(cmd, err))
	}
	table := types.NewDataTable()
	if err := table.Load(rows); err != nil {
		return nil, tableError(cmd, e.scanError(cmd, rows, err))
	}

	collect()
	if err := checkReturnValue(cmd); err != nil {
		return nil, err
	}
	return table, nil
}

// tableError prefixes anything that is not an application failure with
// the command text.
func tableError(cmd *Command, err error) error {
	if IsApplicationError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", cmd.Text, err)
}

// GetDataTableFromText runs a free-form query.
func (e *Executor) GetDataTableFromText(ctx context.Context, sqlText string) (*types.DataTable, error) {
	return e.GetDataTable(ctx, NewTextCommand(sqlText, nil))
}

// GetDataTableFromProcedure runs a procedure with its derived parameters
// left unset.
func (e *Executor) GetDataTableFromProcedure(ctx context.Context, name string) (*types.DataTable, error) {
	return e.GetDataTable(ctx, NewProcedureCommand(name, nil))
}
