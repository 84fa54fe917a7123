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

package expr

import "github.com/pkg/errors"

// Construction errors. They are returned wrapped with the offending call;
// compare with errors.Cause(err) == ErrX.
var (
	// ErrInvalidName is returned when the function name is empty.
	ErrInvalidName = errors.New("function name must not be empty")

	// ErrConflictingAddressing is returned when both a schema and a receiver
	// are supplied, or when the shape requires one of them and it is missing.
	ErrConflictingAddressing = errors.New("conflicting function addressing")

	// ErrArityMismatch is returned when the arguments and their nullability
	// propagation flags differ in length.
	ErrArityMismatch = errors.New("arguments and nullability propagation flags differ in length")

	// ErrNiladicArgument is returned when a niladic call is given arguments
	// or argument nullability propagation flags.
	ErrNiladicArgument = errors.New("niladic function does not take arguments")
)
