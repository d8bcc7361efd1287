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

package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoColumnErr
	NoTableErr
	NoProcedureErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

func (e SQLError) String() string {
	switch e {
	case NoRowsErr:
		return "no_rows"
	case NoColumnErr:
		return "no_column"
	case NoTableErr:
		return "no_table"
	case NoProcedureErr:
		return "no_procedure"
	case DuplicateKeyErr:
		return "duplicate_key"
	case NotNullViolationErr:
		return "not_null_violation"
	case ForeignKeyViolationErr:
		return "foreign_key_violation"
	case CheckConstraintViolationErr:
		return "check_constraint_violation"
	case DataTruncatedErr:
		return "data_truncated"
	case InvalidTypeCastErr:
		return "invalid_type_cast"
	default:
		return "unknown"
	}
}

// IsConstraintViolation reports whether e is one of the integrity
// constraint kinds.
func (e SQLError) IsConstraintViolation() bool {
	switch e {
	case DuplicateKeyErr, NotNullViolationErr, ForeignKeyViolationErr, CheckConstraintViolationErr:
		return true
	}
	return false
}

// sqlServerError is implemented by go-mssqldb's Error.
type sqlServerError interface {
	error
	SQLErrorNumber() int32
}

// IsSqlError classifies a driver error. Structured error numbers are used
// where the driver exposes them, the message text otherwise.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1054:
			return true, NoColumnErr
		case 1146:
			return true, NoTableErr
		case 1305:
			return true, NoProcedureErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1216, 1217, 1451, 1452:
			return true, ForeignKeyViolationErr
		case 3819:
			return true, CheckConstraintViolationErr
		case 1265, 1406:
			return true, DataTruncatedErr
		default:
			return true, UnknownErr
		}
	}

	var msErr sqlServerError
	if errors.As(err, &msErr) {
		switch msErr.SQLErrorNumber() {
		case 207:
			return true, NoColumnErr
		case 208:
			return true, NoTableErr
		case 2812:
			return true, NoProcedureErr
		case 2601, 2627:
			return true, DuplicateKeyErr
		case 515:
			return true, NotNullViolationErr
		case 547:
			// 547 covers both FOREIGN KEY and CHECK conflicts.
			if strings.Contains(strings.ToLower(msErr.Error()), "check constraint") {
				return true, CheckConstraintViolationErr
			}
			return true, ForeignKeyViolationErr
		case 2628, 8152:
			return true, DataTruncatedErr
		case 245, 8114:
			return true, InvalidTypeCastErr
		default:
			return true, UnknownErr
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "sqlstate 42703") ||
		strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column") ||
		strings.Contains(s, "invalid column name") {
		return true, NoColumnErr
	}
	if strings.Contains(s, "sqlstate 42p01") ||
		strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table") ||
		strings.Contains(s, "invalid object name") {
		return true, NoTableErr
	}
	if strings.Contains(s, "could not find stored procedure") ||
		strings.Contains(s, "sqlstate 42883") {
		return true, NoProcedureErr
	}
	if strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not-null constraint") ||
		strings.Contains(s, "sqlstate 23502") ||
		strings.Contains(s, "not null constraint failed") ||
		strings.Contains(s, "cannot insert the value null") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "foreign key") ||
		strings.Contains(s, "sqlstate 23503") {
		return true, ForeignKeyViolationErr
	}
	if strings.Contains(s, "check constraint") ||
		strings.Contains(s, "sqlstate 23514") {
		return true, CheckConstraintViolationErr
	}
	if strings.Contains(s, "string data right truncation") ||
		strings.Contains(s, "would be truncated") ||
		strings.Contains(s, "sqlstate 22001") ||
		strings.Contains(s, "data truncated") {
		return true, DataTruncatedErr
	}
	if strings.Contains(s, "datatype mismatch") ||
		strings.Contains(s, "conversion failed") ||
		strings.Contains(s, "sqlstate 42804") {
		return true, InvalidTypeCastErr
	}
	return false, UnknownErr
}
