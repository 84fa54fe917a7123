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

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// absentHash stands in for a missing child so that a call without a
// receiver never hashes like one whose receiver hashes to zero.
const absentHash uint64 = 0x9e3779b97f4a7c15

// Hasher combines fields into an order sensitive 64 bit hash.
// Every write is self delimiting, so ("ab", "c") and ("a", "bc") differ.
type Hasher struct {
	digest  *xxhash.Digest
	scratch [8]byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{digest: xxhash.New()}
}

// WriteUint64 adds v.
func (h *Hasher) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.scratch[:], v)
	h.digest.Write(h.scratch[:])
}

// WriteString adds s, prefixed with its length.
func (h *Hasher) WriteString(s string) {
	h.WriteUint64(uint64(len(s)))
	h.digest.WriteString(s)
}

// WriteBool adds b.
func (h *Hasher) WriteBool(b bool) {
	if b {
		h.WriteKind(1)
	} else {
		h.WriteKind(0)
	}
}

// WriteFloat64 adds f. Both zeros hash alike since they compare equal.
func (h *Hasher) WriteFloat64(f float64) {
	if f == 0 {
		f = 0
	}
	h.WriteUint64(math.Float64bits(f))
}

// WriteKind adds a single tag byte.
func (h *Hasher) WriteKind(k byte) {
	h.scratch[0] = k
	h.digest.Write(h.scratch[:1])
}

// WriteExpr adds the hash of e, or a fixed sentinel when e is nil.
func (h *Hasher) WriteExpr(e Expr) {
	if e == nil {
		h.WriteUint64(absentHash)
		return
	}
	h.WriteUint64(e.Hash())
}

// WriteBase adds the contribution of the base protocol: the result type
// and the type mapping.
func (h *Hasher) WriteBase(e Expr) {
	h.WriteUint64(uint64(e.Type()))
	m := e.TypeMapping()
	if m == nil {
		h.WriteUint64(absentHash)
		return
	}
	h.WriteString(m.StoreType)
	h.WriteUint64(uint64(m.Size))
	h.WriteBool(m.Unicode)
}

// Sum64 returns the combined hash.
func (h *Hasher) Sum64() uint64 {
	return h.digest.Sum64()
}
