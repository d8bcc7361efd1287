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
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/tomoncle/sqlutility/database"
	"github.com/tomoncle/sqlutility/utils"
)

// Executor runs commands against a bun database, one pooled connection per
// call.
type Executor struct {
	db            *bun.DB
	binder        Binder
	logger        database.Logger
	logCommands   bool
	slowThreshold time.Duration
}

type Option func(*Executor)

func WithBinder(b Binder) Option {
	return func(e *Executor) {
		if b != nil {
			e.binder = b
		}
	}
}

func WithLogger(l database.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSlowThreshold logs a warning for commands running longer than d.
// Zero disables it.
func WithSlowThreshold(d time.Duration) Option {
	return func(e *Executor) { e.slowThreshold = d }
}

func WithCommandLogging(enabled bool) Option {
	return func(e *Executor) { e.logCommands = enabled }
}

func WithConfig(cfg database.ExecutorConfig) Option {
	return func(e *Executor) {
		e.logCommands = cfg.LogCommands
		e.slowThreshold = cfg.SlowCommandTime
	}
}

func NewExecutor(db *bun.DB, opts ...Option) *Executor {
	e := &Executor{
		db:          db,
		binder:      defaultBinder(db),
		logger:      database.GetLogger(),
		logCommands: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultBinder(db *bun.DB) Binder {
	if db != nil && db.Dialect().Name() == dialect.MSSQL {
		return MSSQLBinder{}
	}
	return OutBinder{}
}

func (e *Executor) DB() *bun.DB {
	return e.db
}

// Execute runs target without reading a result set.
func (e *Executor) Execute(ctx context.Context, target string, params *Params) error {
	return e.Run(ctx, NewCommand(target, params), NoResultSet, nil)
}

// ExecuteGetSingle returns the first row mapped onto T. No rows yields a
// zero-valued T.
func ExecuteGetSingle[T any](ctx context.Context, e *Executor, target string, params *Params) (*T, error) {
	var rows []*T
	if err := e.Run(ctx, NewCommand(target, params), SingleRecord, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0] == nil {
		return new(T), nil
	}
	return rows[0], nil
}

// ExecuteGetMultiple returns every row mapped onto T in the order the driver
// produced them. No rows yields an empty, non-nil slice.
func ExecuteGetMultiple[T any](ctx context.Context, e *Executor, target string, params *Params) ([]*T, error) {
	rows := make([]*T, 0)
	if err := e.Run(ctx, NewCommand(target, params), MultipleRecords, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]*T, 0)
	}
	return rows, nil
}

// Run executes cmd in the given mode. For SingleRecord and MultipleRecords
// dest must be a pointer to a slice bun can scan into. cmd.Params always
// carries Message and return_value afterwards.
func (e *Executor) Run(ctx context.Context, cmd *Command, mode Mode, dest interface{}) error {
	if e == nil || e.db == nil {
		return ErrNoDatabase
	}
	if !mode.IsValid() {
		return fmt.Errorf("invalid execution mode %d", mode)
	}
	if mode != NoResultSet && dest == nil {
		return fmt.Errorf("%s requires a destination", mode)
	}
	if cmd.Params == nil {
		cmd.Params = NewParams()
	}
	cmd.Params.AddReserved()

	start := time.Now()
	if e.logCommands {
		e.logger.Debug("execute command", "mode", mode.String(), "sql", cmd.Render())
	}

	err := e.run(ctx, cmd, mode, dest)
	e.observe(cmd, start, err)
	return err
}

func (e *Executor) run(ctx context.Context, cmd *Command, mode Mode, dest interface{}) error {
	conn, err := e.acquire(ctx, cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	args, collect := bindParams(e.binder, cmd.Params)

	switch mode {
	case NoResultSet:
		if _, err := conn.ExecContext(ctx, cmd.Text, args...); err != nil {
			return e.translate(cmd, err)
		}
	default:
		if err := e.query(ctx, conn, cmd, args, dest); err != nil {
			return err
		}
	}

	collect()
	return checkReturnValue(cmd)
}

// acquire takes a pooled connection. Open failures are screened like
// statement failures since the driver reports login and database errors
// here.
func (e *Executor) acquire(ctx context.Context, cmd *Command) (*sql.Conn, error) {
	conn, err := e.db.DB.Conn(ctx)
	if err == nil {
		return conn, nil
	}
	if IsConstraintError(err.Error()) {
		return nil, newConstraintError(cmd, err)
	}
	return nil, fmt.Errorf("acquire connection: %w", err)
}

// query reads the result set into dest. Only driver errors are screened;
// a failure mapping a row onto dest is returned as is.
func (e *Executor) query(ctx context.Context, conn *sql.Conn, cmd *Command, args []interface{}, dest interface{}) error {
	rows, err := conn.QueryContext(ctx, cmd.Text, args...)
	if err != nil {
		return e.translate(cmd, err)
	}
	// ScanRows closes rows; output parameters are only populated after that.
	defer rows.Close()
	if err := e.db.ScanRows(ctx, rows, dest); err != nil {
		return e.scanError(cmd, rows, err)
	}
	return nil
}

// scanError separates a driver error raised while iterating rows from a
// mapping error. rows.Err stays readable after Close.
func (e *Executor) scanError(cmd *Command, rows *sql.Rows, err error) error {
	if rowsErr := rows.Err(); rowsErr != nil {
		return e.translate(cmd, rowsErr)
	}
	return err
}

// translate re-signals constraint violations as application errors and
// returns everything else untouched.
func (e *Executor) translate(cmd *Command, err error) error {
	if IsConstraintError(err.Error()) {
		return newConstraintError(cmd, err)
	}
	return err
}

func checkReturnValue(cmd *Command) error {
	rv, ok := cmd.Params.ReturnValue()
	if !ok || rv != FailureReturnValue {
		return nil
	}
	return &Error{
		Message:     cmd.Params.Message(),
		CommandText: cmd.Text,
	}
}

func (e *Executor) observe(cmd *Command, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		if appErr, ok := AsApplicationError(err); ok {
			e.logger.Warn("command rejected", "command", cmd.Text, "message", appErr.Message, "kind", appErr.Kind.String())
		} else {
			e.logger.Error("command failed", "command", cmd.Text, "error", err, "duration", utils.Since(start))
		}
		return
	}
	if e.slowThreshold > 0 && elapsed > e.slowThreshold {
		e.logger.Warn("slow command", "command", cmd.Text, "duration", utils.Since(start), "threshold", e.slowThreshold.String())
	}
}
