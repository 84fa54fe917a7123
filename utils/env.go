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

import "os"

// Env is the running environment of the tool, read from SQLEXPR_ENV.
type Env string

const (
	EnvProd Env = "production"
	EnvDev  Env = "development"
	EnvTest Env = "test"
)

// GetEnv returns the current environment, development when unset or unknown.
func GetEnv() Env {
	switch env := Env(os.Getenv("SQLEXPR_ENV")); env {
	case EnvProd, EnvDev, EnvTest:
		return env
	default:
		return EnvDev
	}
}

// IsTest checks whether the current env is test.
func IsTest() bool {
	return GetEnv() == EnvTest
}

// IsDev checks whether the current env is development.
func IsDev() bool {
	return GetEnv() == EnvDev
}

// IsProd checks whether the current env is production.
func IsProd() bool {
	return GetEnv() == EnvProd
}

// DefaultLogLevel is debug outside production.
func DefaultLogLevel() string {
	if IsProd() {
		return "info"
	}
	return "debug"
}
