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

package pipeline

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sts10/lumberjack/tree"
)

// ErrConfig reports an invalid pipeline configuration.
var ErrConfig = errors.New("invalid pipeline configuration")

// _defaultDelim joins and splits unary chain labels when the
// configuration leaves delim unset.
const _defaultDelim = "_"

// config is the YAML shape of a pipeline file:
//
//	ops:
//	  - op: collapse_unary_chains
//	    delim: "_"
//	  - op: filter_nonterminals
//	    labels: [NP, PP]
//	    negative: true
type config struct {
	Ops []opConfig `yaml:"ops"`
}

type opConfig struct {
	Op             string   `yaml:"op"`
	Delim          string   `yaml:"delim"`
	Labels         []string `yaml:"labels"`
	Negative       bool     `yaml:"negative"`
	InsertionLabel string   `yaml:"insertion_label"`
	Feature        string   `yaml:"feature"`
}

// Load decodes a YAML pipeline configuration into a runnable op
// sequence. Unknown fields and unknown op names are rejected.
func Load(r io.Reader) ([]Op, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	ops := make([]Op, 0, len(cfg.Ops))
	for i, oc := range cfg.Ops {
		op, err := oc.build()
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (oc opConfig) build() (Op, error) {
	delim := oc.Delim
	if delim == "" {
		delim = _defaultDelim
	}
	labels := func() tree.LabelSet {
		if oc.Negative {
			return tree.NegativeLabelSet(oc.Labels...)
		}
		return tree.PositiveLabelSet(oc.Labels...)
	}

	switch oc.Op {
	case "collapse_unary_chains":
		return CollapseUnaryChains{Delim: delim}, nil
	case "restore_unary_chains":
		return RestoreUnaryChains{Delim: delim}, nil
	case "filter_nonterminals":
		if len(oc.Labels) == 0 {
			return nil, fmt.Errorf("%w: filter_nonterminals needs labels", ErrConfig)
		}
		return FilterNonTerminals{Labels: labels()}, nil
	case "insert_intermediate":
		if oc.InsertionLabel == "" {
			return nil, fmt.Errorf("%w: insert_intermediate needs insertion_label", ErrConfig)
		}
		return InsertIntermediate{Labels: labels(), InsertionLabel: oc.InsertionLabel}, nil
	case "annotate_parent_tag":
		if oc.Feature == "" {
			return nil, fmt.Errorf("%w: annotate_parent_tag needs feature", ErrConfig)
		}
		return AnnotateParentTag{Feature: oc.Feature}, nil
	case "":
		return nil, fmt.Errorf("%w: missing op name", ErrConfig)
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrConfig, oc.Op)
	}
}
