//  Copyright (c) 2023 Uber Technologies, Inc.
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

package tree

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Feature is a single key with an optional value. Value is nil for
// bare keys.
type Feature struct {
	Key   string
	Value *string
}

// Features is an ordered bag of keys with optional values. Insertion
// order is observable and preserved by serialization; a replaced key
// keeps its position.
type Features struct {
	pairs []Feature
}

// ParseFeatures parses a pipe-delimited feature string. Each field is
// split at its first colon: "k:v" becomes a key with a value, a bare
// "k" a key without one. The empty string yields an empty bag.
func ParseFeatures(s string) *Features {
	if s == "" {
		return &Features{}
	}
	fields := strings.Split(s, "|")
	pairs := make([]Feature, 0, len(fields))
	for _, field := range fields {
		if idx := strings.Index(field, ":"); idx >= 0 {
			val := field[idx+1:]
			pairs = append(pairs, Feature{Key: field[:idx], Value: &val})
		} else {
			pairs = append(pairs, Feature{Key: field})
		}
	}
	return &Features{pairs: pairs}
}

// NewFeatures returns an empty feature bag.
func NewFeatures() *Features {
	return &Features{}
}

// Len returns the number of features in the bag. A nil bag is empty.
func (f *Features) Len() int {
	if f == nil {
		return 0
	}
	return len(f.pairs)
}

// Insert adds a key with an optional value. If the key is already
// present its value is replaced in place, keeping the key's position,
// and the previous value is returned.
func (f *Features) Insert(key string, value *string) *string {
	for i := range f.pairs {
		if f.pairs[i].Key == key {
			prev := f.pairs[i].Value
			f.pairs[i].Value = value
			return prev
		}
	}
	f.pairs = append(f.pairs, Feature{Key: key, Value: value})
	return nil
}

// InsertValue is shorthand for Insert with a present value.
func (f *Features) InsertValue(key, value string) *string {
	return f.Insert(key, &value)
}

// Remove deletes a key from the bag and returns its value.
func (f *Features) Remove(key string) *string {
	for i := range f.pairs {
		if f.pairs[i].Key == key {
			val := f.pairs[i].Value
			f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
			return val
		}
	}
	return nil
}

// Get returns the value stored under key. The second return value is
// false if the key is absent or has no value.
func (f *Features) Get(key string) (string, bool) {
	for i := range f.pairs {
		if f.pairs[i].Key == key && f.pairs[i].Value != nil {
			return *f.pairs[i].Value, true
		}
	}
	return "", false
}

// Inner returns the features in insertion order. The slice aliases
// the bag and must not be modified.
func (f *Features) Inner() []Feature {
	return f.pairs
}

// String re-emits the pipe-delimited form, preserving order.
func (f *Features) String() string {
	var sb strings.Builder
	for i, pair := range f.pairs {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(pair.Key)
		if pair.Value != nil {
			sb.WriteByte(':')
			sb.WriteString(*pair.Value)
		}
	}
	return sb.String()
}

// Equal reports whether two bags hold the same keys and values in the
// same order. A nil bag equals an empty one.
func (f *Features) Equal(other *Features) bool {
	if f == nil || other == nil {
		return f.Len() == other.Len()
	}
	return slices.EqualFunc(f.pairs, other.pairs, func(a, b Feature) bool {
		if a.Key != b.Key {
			return false
		}
		if (a.Value == nil) != (b.Value == nil) {
			return false
		}
		return a.Value == nil || *a.Value == *b.Value
	})
}

// Clone returns a deep copy of the bag.
func (f *Features) Clone() *Features {
	if f == nil {
		return nil
	}
	pairs := make([]Feature, len(f.pairs))
	for i, pair := range f.pairs {
		pairs[i] = Feature{Key: pair.Key}
		if pair.Value != nil {
			val := *pair.Value
			pairs[i].Value = &val
		}
	}
	return &Features{pairs: pairs}
}
