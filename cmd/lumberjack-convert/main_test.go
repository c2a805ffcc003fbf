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

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sts10/lumberjack/pipeline"
)

func TestUnknownFormats(t *testing.T) {
	_, err := newReader(strings.NewReader(""), "conllx")
	require.ErrorIs(t, err, errFormat)
	_, err = newWriter(&strings.Builder{}, "negra")
	require.ErrorIs(t, err, errFormat)
}

func TestConvertProjectivizesBeforeWriting(t *testing.T) {
	export := `#BOS 2
er	er	PPER	3sm	SB	501
hat	haben	VAFIN	3sis	HD	0
gelacht	lachen	VVPP	--	HD	501
#501	--	VP	--	OA	0
#EOS 2
`
	reader, err := newReader(strings.NewReader(export), "negra")
	require.NoError(t, err)
	var out strings.Builder
	writer, err := newWriter(&out, "simple")
	require.NoError(t, err)

	require.NoError(t, convert(reader, writer, nil))
	require.Equal(t, "(VROOT (VP (PPER er) (VAFIN hat) (VVPP gelacht)))\n", out.String())
}

func TestConvertAppliesPipeline(t *testing.T) {
	ops, err := pipeline.Load(strings.NewReader("ops:\n  - op: collapse_unary_chains\n"))
	require.NoError(t, err)

	reader, err := newReader(strings.NewReader("(ROOT (UNARY (T t)) (ANOTHER (T2 t2)))\n"), "ptb-singleline")
	require.NoError(t, err)
	var out strings.Builder
	writer, err := newWriter(&out, "simple")
	require.NoError(t, err)

	require.NoError(t, convert(reader, writer, ops))
	require.Equal(t, "(ROOT (T t) (T2 t2))\n", out.String())
}

func TestConvertToCoNLL(t *testing.T) {
	reader, err := newReader(strings.NewReader("(S (NP (DET the) (NN dog)) (VBZ barks))\n"), "ptb-singleline")
	require.NoError(t, err)
	var out strings.Builder
	writer, err := newWriter(&out, "conllx")
	require.NoError(t, err)

	require.NoError(t, convert(reader, writer, nil))
	want := "1\tthe\t_\tDET\tDET\t_\t_\t_\t_\t_\n" +
		"2\tdog\t_\tNN\tNN\t_\t_\t_\t_\t_\n" +
		"3\tbarks\t_\tVBZ\tVBZ\t_\t_\t_\t_\t_\n" +
		"\n"
	require.Equal(t, want, out.String())
}
