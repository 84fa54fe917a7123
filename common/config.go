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

package common

// CacheConfig controls the expression cache.
type CacheConfig struct {
	// maximum number of expressions held before the oldest are evicted
	Capacity int `yaml:"capacity"`
}

// PrinterConfig controls diagnostic rendering.
type PrinterConfig struct {
	// separator written between function arguments
	Separator string `yaml:"separator"`
}

// TypeMappingConfig is the dialect storage type assigned to the result of
// a function. Schema is empty for built-in functions.
type TypeMappingConfig struct {
	Schema    string `yaml:"schema"`
	Function  string `yaml:"function" validate:"nonzero"`
	StoreType string `yaml:"store_type" validate:"nonzero"`
	Size      int    `yaml:"size"`
	Unicode   bool   `yaml:"unicode"`
}

// SQLExprConfig is the top level configuration of the sqlexpr tool.
type SQLExprConfig struct {
	// zap level name: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	Cache   CacheConfig   `yaml:"cache"`
	Printer PrinterConfig `yaml:"printer"`

	// function names are matched ignoring case
	TypeMappings []TypeMappingConfig `yaml:"type_mappings"`

	// columns known to never hold NULL
	NonNullColumns []string `yaml:"non_null_columns"`
}

// DefaultCacheCapacity is used when the configured capacity is not positive.
const DefaultCacheCapacity = 1024

// DefaultSeparator is the argument separator of the expression printer.
const DefaultSeparator = ", "
