package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/hupe1980/qmc/internal/fs"
)

var tmpSeq atomic.Uint64

// SaveToFile writes ps to path atomically on the local file system.
func SaveToFile(path string, ps *PointSet, c Compression) error {
	return SaveToFileFS(fs.Default, path, ps, c)
}

// SaveToFileFS writes ps to path atomically: the file is written to a
// temporary sibling, synced and renamed over path, so readers never observe a
// partial point set. The temporary file is removed on failure.
func SaveToFileFS(fsys fs.FileSystem, path string, ps *PointSet, c Compression) (err error) {
	tmp, err := createTemp(fsys, path)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err != nil {
			if !closed {
				_ = tmp.Close()
			}
			_ = fsys.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Write(bw, ps, c); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}

	// The new file is already in place; a failed directory sync only means
	// the rename may not survive a crash.
	if err := fsys.SyncDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("sync dir %s: %w", filepath.Dir(path), err)
	}
	return nil
}

func createTemp(fsys fs.FileSystem, path string) (fs.File, error) {
	dir, base := filepath.Split(path)
	for range 100 {
		name := filepath.Join(dir, base+".tmp-"+strconv.Itoa(os.Getpid())+"-"+strconv.FormatUint(tmpSeq.Add(1), 10))
		f, err := fsys.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create temp file: %w", err)
		}
	}
	return nil, fmt.Errorf("create temp file for %s: too many collisions", path)
}

// LoadFromFile reads a point set written by SaveToFile.
func LoadFromFile(path string) (*PointSet, error) {
	return LoadFromFileFS(fs.Default, path)
}

// LoadFromFileFS reads a point set through fsys.
func LoadFromFileFS(fsys fs.FileSystem, path string) (*PointSet, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ps, err := Read(bufio.NewReaderSize(f, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ps, nil
}
