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
	"strings"

	"github.com/spf13/viper"
)

// BindEnvironments binds SQLEXPR_* environment variables to config keys,
// e.g. SQLEXPR_CACHE_CAPACITY to cache.capacity.
func BindEnvironments(v *viper.Viper) {
	v.SetEnvPrefix("sqlexpr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("env")
	v.BindEnv("log_level")
	v.BindEnv("cache.capacity")
	v.BindEnv("printer.separator")
}
