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

	"github.com/uptrace/bun"

	"github.com/tomoncle/sqlutility/command"
	"github.com/tomoncle/sqlutility/types"
)

type baseRepositoryImpl[T any] struct {
	exec *command.Executor
}

// NewRepository returns a Repository backed by a new executor on db.
func NewRepository[T any](db *bun.DB, opts ...command.Option) Repository[T] {
	return NewRepositoryWithExecutor[T](command.NewExecutor(db, opts...))
}

func NewRepositoryWithExecutor[T any](exec *command.Executor) Repository[T] {
	return &baseRepositoryImpl[T]{exec: exec}
}

func (r *baseRepositoryImpl[T]) Executor() *command.Executor { return r.exec }

func (r *baseRepositoryImpl[T]) Execute(ctx context.Context, target string, params *command.Params) error {
	return r.exec.Execute(ctx, target, params)
}

func (r *baseRepositoryImpl[T]) GetSingle(ctx context.Context, target string, params *command.Params) (*T, error) {
	return command.ExecuteGetSingle[T](ctx, r.exec, target, params)
}

func (r *baseRepositoryImpl[T]) GetMultiple(ctx context.Context, target string, params *command.Params) ([]*T, error) {
	return command.ExecuteGetMultiple[T](ctx, r.exec, target, params)
}

func (r *baseRepositoryImpl[T]) GetSQLCommand(ctx context.Context, procName string) (*command.Command, error) {
	return r.exec.GetSQLCommand(ctx, procName)
}

func (r *baseRepositoryImpl[T]) GetDataTable(ctx context.Context, cmd *command.Command) (*types.DataTable, error) {
	return r.exec.GetDataTable(ctx, cmd)
}

func (r *baseRepositoryImpl[T]) GetDataTableFromText(ctx context.Context, sqlText string) (*types.DataTable, error) {
	return r.exec.GetDataTableFromText(ctx, sqlText)
}

func (r *baseRepositoryImpl[T]) GetDataTableFromProcedure(ctx context.Context, name string) (*types.DataTable, error) {
	return r.exec.GetDataTableFromProcedure(ctx, name)
}
