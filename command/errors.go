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
	"errors"
	"strings"

	"github.com/tomoncle/sqlutility/database"
)

var ErrNoDatabase = errors.New("database not initialized")

// constraintMarkers are the foreign key, check and unique constraint name
// prefixes looked for in driver error text.
var constraintMarkers = []string{"f_", "ck_", "u_"}

// Error is an application-level failure meant to be shown to the end
// user: either a constraint violation reported by the driver or a
// procedure returning FailureReturnValue.
type Error struct {
	Message     string
	CommandText string
	// Kind is set when the failure came from a driver error.
	Kind database.SQLError
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConstraintError reports whether a driver error message names a
// constraint, matched case-insensitively on the constraint prefixes.
func IsConstraintError(message string) bool {
	s := strings.ToLower(message)
	for _, m := range constraintMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func AsApplicationError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsApplicationError(err error) bool {
	_, ok := AsApplicationError(err)
	return ok
}

func newConstraintError(cmd *Command, err error) *Error {
	_, kind := database.IsSqlError(err)
	return &Error{
		Message:     err.Error(),
		CommandText: cmd.Text,
		Kind:        kind,
		Err:         err,
	}
}
