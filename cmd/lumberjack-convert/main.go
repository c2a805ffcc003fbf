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

// Command lumberjack-convert reads constituency trees in bracketed or
// NEGRA export notation, optionally applies a configured sequence of
// structural operations, projectivizes every tree, and writes the
// result as bracketed strings or CoNLL-X token rows. Files ending in
// .gz are (de)compressed transparently.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"github.com/sts10/lumberjack/conll"
	"github.com/sts10/lumberjack/negra"
	"github.com/sts10/lumberjack/pipeline"
	"github.com/sts10/lumberjack/ptb"
	"github.com/sts10/lumberjack/tree"
)

var (
	inputFile    string
	outputFile   string
	inputFormat  string
	outputFormat string
	pipelineFile string
)

func init() {
	flag.StringVar(&inputFile, "input_file", "", "input file (default: standard input)")
	flag.StringVar(&outputFile, "output_file", "", "output file (default: standard output)")
	flag.StringVar(&inputFormat, "input_format", "ptb-singleline",
		"input format: ptb-singleline, ptb-multiline, or negra")
	flag.StringVar(&outputFormat, "output_format", "simple",
		"output format: simple, tuebav2, or conllx")
	flag.StringVar(&pipelineFile, "pipeline", "",
		"YAML file with tree operations applied before projectivization")
}

// errFormat reports an unknown input or output format name.
var errFormat = errors.New("unknown format")

// treeReader is the part of the reader contract the conversion loop
// needs; both the bracketed and the NEGRA reader satisfy it.
type treeReader interface {
	Read() (*tree.Tree, error)
}

// treeWriter is satisfied by the bracketed and the CoNLL-X emitters.
type treeWriter interface {
	Write(t *tree.Tree) error
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lumberjack-convert: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	ops, err := loadPipeline()
	if err != nil {
		return err
	}

	in, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, in.Close())
	}()

	out, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	reader, err := newReader(in, inputFormat)
	if err != nil {
		return err
	}
	writer, err := newWriter(out, outputFormat)
	if err != nil {
		return err
	}

	return convert(reader, writer, ops)
}

// convert is the corpus loop: read, transform, projectivize, write.
func convert(reader treeReader, writer treeWriter, ops []pipeline.Op) error {
	for i := 1; ; i++ {
		t, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		if err := pipeline.Run(ops, t); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		t.Projectivize()
		if err := writer.Write(t); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
}

func loadPipeline() ([]pipeline.Op, error) {
	if pipelineFile == "" {
		return nil, nil
	}
	f, err := os.Open(pipelineFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ops, err := pipeline.Load(f)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", pipelineFile, err)
	}
	return ops, nil
}

func newReader(r io.Reader, format string) (treeReader, error) {
	switch format {
	case "ptb-singleline":
		return ptb.NewReader(r, ptb.SingleLine, ptb.TueBaV2), nil
	case "ptb-multiline":
		return ptb.NewReader(r, ptb.MultiLine, ptb.TueBaV2), nil
	case "negra":
		return negra.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: input format %q", errFormat, format)
	}
}

func newWriter(w io.Writer, format string) (treeWriter, error) {
	switch format {
	case "simple":
		return ptb.NewWriter(w, ptb.Simple), nil
	case "tuebav2":
		return ptb.NewWriter(w, ptb.TueBaV2), nil
	case "conllx":
		return &conllWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: output format %q", errFormat, format)
	}
}

// conllWriter adapts the sentence projection to the treeWriter
// contract.
type conllWriter struct {
	w io.Writer
}

func (c *conllWriter) Write(t *tree.Tree) error {
	return conll.Drain(t).WriteTo(c.w)
}

// openInput opens the input file, or standard input when path is
// empty, decompressing .gz transparently.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReadCloser) Close() error {
	return multierr.Append(g.zr.Close(), g.f.Close())
}

// openOutput opens the output file, or standard output when path is
// empty, compressing .gz transparently.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		// Keep standard output open for the process.
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return &gzipWriteCloser{zw: gzip.NewWriter(f), f: f}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type gzipWriteCloser struct {
	zw *gzip.Writer
	f  *os.File
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) {
	return g.zw.Write(p)
}

func (g *gzipWriteCloser) Close() error {
	return multierr.Append(g.zw.Close(), g.f.Close())
}
