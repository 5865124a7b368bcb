// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs defines the coded errors reported by the benchmark harness.
//
// Every failure surfaced by a sweep carries one of three codes:
//
//   - EInvalid: bad configuration or an empty sample pool. Detected before
//     any measurement runs.
//   - EAllocation: a dataset could not be allocated.
//   - EWorker: a fault inside a trial (panic, unsorted output).
//
// Errors that do not originate here report EInternal.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes.
const (
	EInternal   = "internal error"
	EInvalid    = "invalid input"
	EAllocation = "allocation failure"
	EWorker     = "worker failure"
)

// Error is a coded error with an optional operation name and wrapped cause.
//
// Code targets callers that need to branch on the failure kind, Msg is the
// human-readable detail, and Op names the operation that failed:
//
//	&errs.Error{
//	    Code: errs.EInvalid,
//	    Op:   "stats.Median",
//	    Msg:  "empty sample pool",
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// Error writes out Op, Msg and the wrapped error, whichever are set.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		fmt.Fprintf(&b, "<%s>", e.Code)
	}
	return b.String()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid returns an EInvalid error for op.
func Invalid(op, format string, args ...any) *Error {
	return &Error{Code: EInvalid, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Allocation returns an EAllocation error for op.
func Allocation(op string, err error, format string, args ...any) *Error {
	return &Error{Code: EAllocation, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Worker returns an EWorker error for op.
func Worker(op string, err error, format string, args ...any) *Error {
	return &Error{Code: EWorker, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// ErrorCode returns the code of the outermost coded error in err's chain.
// An error with no code in its chain reports EInternal; nil reports "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return EInternal
		}
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return EInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return ErrorCode(err) == code
}
