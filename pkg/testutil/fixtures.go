package testutil

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Input describes one input file to create.
type Input struct {
	Name string
	Size int
}

// Payload returns deterministic content of the given size. Different names
// produce different bytes so a misordered concatenation is detectable.
func Payload(name string, size int) []byte {
	if size <= 0 {
		return []byte{}
	}
	var buf bytes.Buffer
	for i := 0; buf.Len() < size; i++ {
		fmt.Fprintf(&buf, "@%s.%d\nACGTTGCA\n+\nIIIIIIII\n", name, i)
	}
	return buf.Bytes()[:size]
}

// WriteInputs creates the inputs under dir and returns their paths in the
// given order.
func WriteInputs(t *testing.T, fs types.FS, dir string, inputs ...Input) []string {
	t.Helper()

	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}

	files := make([]string, 0, len(inputs))
	for _, in := range inputs {
		path := filepath.Join(dir, in.Name)
		if err := fs.WriteFile(path, Payload(in.Name, in.Size), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
		files = append(files, path)
	}
	return files
}

// Concat returns the expected concatenation of the inputs.
func Concat(inputs ...Input) []byte {
	var buf bytes.Buffer
	for _, in := range inputs {
		buf.Write(Payload(in.Name, in.Size))
	}
	return buf.Bytes()
}

// ReadFile reads path from fs, failing the test on error.
func ReadFile(t *testing.T, fs types.FS, path string) []byte {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
