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

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sts10/lumberjack/tree"
)

func TestParseFeaturesRoundTrip(t *testing.T) {
	for _, input := range []string{
		"morph:nsf",
		"a:1|b|c:x:y",
		"gsf",
		"key:|flag",
	} {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, input, tree.ParseFeatures(input).String())
		})
	}

	require.Equal(t, 0, tree.ParseFeatures("").Len())
	require.Equal(t, "", tree.ParseFeatures("").String())
}

func TestFeaturesSplitAtFirstColon(t *testing.T) {
	features := tree.ParseFeatures("c:x:y")
	val, ok := features.Get("c")
	require.True(t, ok)
	require.Equal(t, "x:y", val)
}

func TestFeaturesInsert(t *testing.T) {
	features := tree.NewFeatures()
	require.Nil(t, features.InsertValue("a", "1"))
	require.Nil(t, features.Insert("b", nil))
	require.Nil(t, features.InsertValue("c", "3"))
	require.Equal(t, "a:1|b|c:3", features.String())

	// Replacing keeps the key's position and returns the previous
	// value.
	prev := features.InsertValue("a", "7")
	require.NotNil(t, prev)
	require.Equal(t, "1", *prev)
	require.Equal(t, "a:7|b|c:3", features.String())

	prev = features.InsertValue("b", "2")
	require.Nil(t, prev)
	require.Equal(t, "a:7|b:2|c:3", features.String())
}

func TestFeaturesRemove(t *testing.T) {
	features := tree.ParseFeatures("a:1|b|c:3")
	val := features.Remove("b")
	require.Nil(t, val)
	require.Equal(t, "a:1|c:3", features.String())

	val = features.Remove("a")
	require.NotNil(t, val)
	require.Equal(t, "1", *val)
	require.Nil(t, features.Remove("missing"))
	require.Equal(t, "c:3", features.String())
}

func TestFeaturesGet(t *testing.T) {
	features := tree.ParseFeatures("a:1|flag")
	val, ok := features.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", val)

	_, ok = features.Get("flag")
	require.False(t, ok)
	_, ok = features.Get("missing")
	require.False(t, ok)
}

func TestFeaturesEqualAndClone(t *testing.T) {
	features := tree.ParseFeatures("a:1|b")
	clone := features.Clone()
	require.True(t, features.Equal(clone))

	clone.InsertValue("b", "2")
	require.False(t, features.Equal(clone))

	var nilBag *tree.Features
	require.True(t, nilBag.Equal(tree.NewFeatures()))
	require.False(t, nilBag.Equal(features))
}
