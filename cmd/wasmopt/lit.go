// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var litCommand = &cobra.Command{
	Use:   "lit <input> <output>",
	Short: "Run a named pass list over every module directive in a WAST stream",
	Long: "lit scans a WAST directive stream for top-level (module ...) forms, and " +
		"for each one: parses it into the IR, runs the comma-separated --passes " +
		"list, and prints the result as WAT. Non-module directives are passed " +
		"through unchanged.",
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runLit(args[0], args[1], configuredLitPasses)
	},
}

var configuredLitPasses []string
var litFeatures *featureOptions

func runLit(inputPath, outputPath string, passNames []string) error {
	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(in)

	runner, err := newRunner(passNames)
	if err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeQuietly(out)

	directives, err := scanDirectives(in)
	if err != nil {
		return err
	}

	for _, d := range directives {
		if !strings.HasPrefix(strings.TrimSpace(d), "(module") {
			if _, err := io.WriteString(out, d+"\n"); err != nil {
				return errors.Wrap(err, "write passthrough directive")
			}
			continue
		}

		m, err := readModule("wat", strings.NewReader(d), litFeatures)
		if err != nil {
			return errors.Wrap(err, "parse module directive")
		}
		if err := runner.Run(m); err != nil {
			return err
		}
		if err := writeModule("wat", out, m); err != nil {
			return err
		}
	}

	return nil
}

// scanDirectives splits src into top-level, balanced-parenthesis forms, the
// directive unit a WAST stream is made of. It tracks string literals only
// well enough not to miscount a paren inside one; comments are not
// recognized, so a paren inside a ;; or (; ;) comment is counted. It is not
// a WAST parser (that grammar is out of scope here).
func scanDirectives(src io.Reader) ([]string, error) {
	r := bufio.NewReader(src)
	var directives []string
	var buf strings.Builder
	depth := 0
	inString := false
	started := false

	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read directive stream")
		}

		if inString {
			buf.WriteRune(ch)
			if ch == '\\' {
				next, _, err := r.ReadRune()
				if err == nil {
					buf.WriteRune(next)
				}
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			buf.WriteRune(ch)
		case '(':
			depth++
			started = true
			buf.WriteRune(ch)
		case ')':
			depth--
			buf.WriteRune(ch)
			if depth == 0 && started {
				directives = append(directives, buf.String())
				buf.Reset()
				started = false
			}
		default:
			if started || !isSpace(ch) {
				buf.WriteRune(ch)
			}
		}
	}

	return directives, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func init() {
	litCommand.Flags().StringSliceVar(&configuredLitPasses, "passes", nil, "comma-separated pass names to run over each module directive")
	litFeatures = addFeatureFlags(litCommand.Flags())
	RootCommand.AddCommand(litCommand)
}
