//  Copyright (c) 2017-2018 Uber Technologies, Inc.
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

package utils

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// StackedError contains multiple lines of error messages as well as the stack trace.
// The first message is the innermost one.
type StackedError struct {
	Messages []string `json:"messages"`
	Stack    []string `json:"stack"`

	cause error
}

// Error returns the messages outermost first, followed by the stack.
func (e *StackedError) Error() string {
	var result string
	for i := len(e.Messages) - 1; i >= 0; i-- {
		result += e.Messages[i]
		result += "\n"
	}
	result += strings.Join(e.Stack, "\n")
	return result
}

// Message returns the messages joined outermost first, without the stack.
func (e *StackedError) Message() string {
	parts := make([]string, 0, len(e.Messages))
	for i := len(e.Messages) - 1; i >= 0; i-- {
		parts = append(parts, e.Messages[i])
	}
	return strings.Join(parts, ": ")
}

// Cause returns the error the stack was started from, so that
// errors.Cause sees through a StackedError.
func (e *StackedError) Cause() error {
	return errors.Cause(e.cause)
}

func captureStack() []string {
	stack := make([]byte, 0x10000)
	n := runtime.Stack(stack, false)
	lines := strings.Split(string(stack[:n]), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// StackError adds one more line of message to err.
// It creates a new StackedError if err is not already a StackedError.
func StackError(err error, message string, args ...interface{}) *StackedError {
	if err == nil {
		msg := fmt.Sprintf(message, args...)
		return &StackedError{
			Messages: []string{msg},
			Stack:    captureStack(),
			cause:    errors.New(msg),
		}
	}

	e, ok := err.(*StackedError)
	if !ok {
		e = &StackedError{
			Messages: []string{err.Error()},
			Stack:    captureStack(),
			cause:    err,
		}
	}

	if message != "" {
		e.Messages = append(e.Messages, fmt.Sprintf(message, args...))
	}
	return e
}

// RecoverWrap calls call and converts a panic into an error.
func RecoverWrap(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch x := r.(type) {
			case string:
				err = errors.New(x)
			case error:
				err = x
			default:
				err = errors.Errorf("unknown panic: %v", x)
			}
		}
	}()

	err = call()
	return
}
