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


package sqlutility

import (
	"context"
	"sync"

	"github.com/tomoncle/sqlutility/command"
	"github.com/tomoncle/sqlutility/database"
	"github.com/tomoncle/sqlutility/repository"
	"github.com/tomoncle/sqlutility/types"
)

type Service[T any] interface {
	// Execute runs a command that returns no rows.
	Execute(ctx context.Context, target string, params *command.Params) error

	// GetSingle returns the first row, or a zero-valued T when there is none.
	GetSingle(ctx context.Context, target string, params *command.Params) (*T, error)

	// GetMultiple returns every row; never nil on success.
	GetMultiple(ctx context.Context, target string, params *command.Params) ([]*T, error)

	// GetDataTable loads an untyped result set.
	GetDataTable(ctx context.Context, cmd *command.Command) (*types.DataTable, error)

	// Executor exposes the underlying executor.
	Executor() *command.Executor
}

type baseServiceImpl[T any] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service bound lazily to the global database
// connection and its executor settings.
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

// NewServiceWithExecutor returns a Service that runs on exec.
func NewServiceWithExecutor[T any](exec *command.Executor) Service[T] {
	s := &baseServiceImpl[T]{}
	s.once.Do(func() { s.repo = repository.NewRepositoryWithExecutor[T](exec) })
	return s
}

func (s *baseServiceImpl[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() {
		var opts []command.Option
		if cfg := database.GetConfig(); cfg != nil {
			opts = append(opts, command.WithConfig(cfg.ExecutorConfig))
		}
		s.repo = repository.NewRepository[T](database.GetDB(), opts...)
	})
	return s.repo
}

func (s *baseServiceImpl[T]) Execute(ctx context.Context, target string, params *command.Params) error {
	return s.baseRepo().Execute(ctx, target, params)
}

func (s *baseServiceImpl[T]) GetSingle(ctx context.Context, target string, params *command.Params) (*T, error) {
	return s.baseRepo().GetSingle(ctx, target, params)
}

func (s *baseServiceImpl[T]) GetMultiple(ctx context.Context, target string, params *command.Params) ([]*T, error) {
	return s.baseRepo().GetMultiple(ctx, target, params)
}

func (s *baseServiceImpl[T]) GetDataTable(ctx context.Context, cmd *command.Command) (*types.DataTable, error) {
	return s.baseRepo().GetDataTable(ctx, cmd)
}

func (s *baseServiceImpl[T]) Executor() *command.Executor {
	return s.baseRepo().Executor()
}
