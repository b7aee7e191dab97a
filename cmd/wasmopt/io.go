// Copyright 2018 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// openInput opens path for reading, treating "-" as stdin. The caller must
// close the returned io.ReadCloser unless it is stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open input %q", path)
	}
	return f, nil
}

// openOutput opens path for writing, treating "-" as stdout. The caller must
// close the returned io.WriteCloser unless it is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create output %q", path)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// closeQuietly closes c, discarding the error; used in defers for files this
// command already flushed and reported any write error for.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}
