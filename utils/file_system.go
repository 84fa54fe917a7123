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
	"io/ioutil"
	"os"
)

// FileSystem is a file system interface
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	Stat(path string) (os.FileInfo, error)
}

// OSFileSystem implements FileSystem using os package
type OSFileSystem struct{}

// ReadFile reads whole file into byte buffer
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return ioutil.ReadFile(name)
}

// Stat tries gets file info for t
func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
