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
	"github.com/uber-go/tally"
	"github.com/uber/sqlexpr/common"
)

var (
	logger       common.Logger
	queryLogger  common.Logger
	rootReporter *Reporter
	config       common.SQLExprConfig
)

func init() {
	ResetDefaults()
}

// ResetDefaults reset default config, logger and metrics settings.
func ResetDefaults() {
	factory := common.NewLoggerFactory()
	logger = factory.GetDefaultLogger()
	queryLogger = factory.GetLogger("query")
	rootReporter = NewReporter(tally.NewTestScope("test", nil))
	config = DefaultConfig()
}

// Init loads application specific common components settings.
func Init(c common.SQLExprConfig, l common.Logger, ql common.Logger, s tally.Scope) {
	config = c
	logger = l
	queryLogger = ql
	rootReporter = NewReporter(s)
}

// GetLogger returns the logger.
func GetLogger() common.Logger {
	return logger
}

// GetQueryLogger returns the logger for the compiler packages.
func GetQueryLogger() common.Logger {
	return queryLogger
}

// GetRootReporter returns the root metrics reporter.
func GetRootReporter() *Reporter {
	return rootReporter
}

// GetConfig returns the application config.
func GetConfig() common.SQLExprConfig {
	return config
}

// DefaultConfig returns the configuration used when nothing is loaded. The
// log level depends on SQLEXPR_ENV.
func DefaultConfig() common.SQLExprConfig {
	return common.SQLExprConfig{
		LogLevel: DefaultLogLevel(),
		Cache:    common.CacheConfig{Capacity: common.DefaultCacheCapacity},
		Printer:  common.PrinterConfig{Separator: common.DefaultSeparator},
	}
}
