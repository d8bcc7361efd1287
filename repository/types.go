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


package repository

import (
	"context"

	"github.com/tomoncle/sqlutility/command"
	"github.com/tomoncle/sqlutility/types"
)

// ProcedureRepository runs commands and maps their rows onto T.
type ProcedureRepository[T any] interface {
	Execute(ctx context.Context, target string, params *command.Params) error

	GetSingle(ctx context.Context, target string, params *command.Params) (*T, error)

	GetMultiple(ctx context.Context, target string, params *command.Params) ([]*T, error)
}

// TableRepository loads untyped result sets.
type TableRepository interface {
	GetSQLCommand(ctx context.Context, procName string) (*command.Command, error)
	GetDataTable(ctx context.Context, cmd *command.Command) (*types.DataTable, error)
	GetDataTableFromText(ctx context.Context, sqlText string) (*types.DataTable, error)
	GetDataTableFromProcedure(ctx context.Context, name string) (*types.DataTable, error)
}

// Repository combines typed and tabular access and exposes the executor
// for advanced use cases.
type Repository[T any] interface {
	ProcedureRepository[T]
	TableRepository
	Executor() *command.Executor
}
