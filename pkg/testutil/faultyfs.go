package testutil

import (
	"io/fs"
	"sync"

	"github.com/taoziyu97/sra-tools/pkg/types"
)

// Operation names understood by FaultyFS.
const (
	OpStat     = "stat"
	OpOpen     = "open"
	OpOpenFile = "openfile"
	OpMkdirAll = "mkdirall"
	OpRename   = "rename"
	OpRemove   = "remove"
)

// FaultyFS wraps a types.FS and fails selected operations. It also records
// every call so tests can assert which filesystem mutations happened.
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults map[string]error
	calls  map[string][]string
}

// NewFaultyFS wraps base.
func NewFaultyFS(base types.FS) *FaultyFS {
	return &FaultyFS{
		FS:     base,
		faults: make(map[string]error),
		calls:  make(map[string][]string),
	}
}

// Fail makes op on path return err. An empty path matches every path.
func (f *FaultyFS) Fail(op, path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op+":"+path] = err
	return f
}

// Calls returns the paths op was invoked with, in order.
func (f *FaultyFS) Calls(op string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls[op]...)
}

func (f *FaultyFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op] = append(f.calls[op], path)
	if err, ok := f.faults[op+":"+path]; ok {
		return err
	}
	return f.faults[op+":"]
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) Open(name string) (types.File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.Open(name)
}

func (f *FaultyFS) OpenFile(name string, flag int, perm fs.FileMode) (types.File, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.FS.OpenFile(name, flag, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}
