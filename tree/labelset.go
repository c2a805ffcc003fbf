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

// LabelSet is a membership predicate over node labels. A positive set
// matches labels it contains, a negative set matches labels it does
// not contain, so filters can be inclusive or exclusive through one
// interface.
type LabelSet struct {
	labels   map[string]struct{}
	negative bool
}

// PositiveLabelSet returns a set matching exactly the given labels.
func PositiveLabelSet(labels ...string) LabelSet {
	return LabelSet{labels: labelMap(labels)}
}

// NegativeLabelSet returns a set matching every label except the
// given ones.
func NegativeLabelSet(labels ...string) LabelSet {
	return LabelSet{labels: labelMap(labels), negative: true}
}

func labelMap(labels []string) map[string]struct{} {
	m := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		m[label] = struct{}{}
	}
	return m
}

// Matches reports whether the set accepts label.
func (s LabelSet) Matches(label string) bool {
	_, ok := s.labels[label]
	if s.negative {
		return !ok
	}
	return ok
}
