// Package archive reads file entries out of packaged artifacts.
package archive

import (
	"archive/zip"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"
)

// =============================================================================
// Archive Reader
// =============================================================================

// Reader extracts named entries from zip artifacts. Decoded archives are
// cached by path, and concurrent first reads of the same path coalesce into
// a single decode. The cache is scoped to the Reader, so it lives exactly as
// long as the deployment invocation that owns it.
type Reader struct {
	group  singleflight.Group
	decode func(path string) (map[string][]byte, error)

	mu    sync.RWMutex
	cache map[string]map[string][]byte
}

// NewReader creates a Reader with an empty cache.
func NewReader() *Reader {
	return &Reader{
		decode: decodeZip,
		cache:  make(map[string]map[string][]byte),
	}
}

// ReadFile returns the content of the named entry inside the archive at
// archivePath. A second call for the same archive serves from cache and must
// not be assumed to retrigger disk I/O. A missing entry fails with
// ErrEntryNotFound.
func (r *Reader) ReadFile(archivePath, name string) (string, error) {
	entries, err := r.load(archivePath)
	if err != nil {
		return "", &ReadError{Archive: archivePath, Err: err}
	}
	data, ok := entries[name]
	if !ok {
		return "", &ReadError{Archive: archivePath, Entry: name, Err: ErrEntryNotFound}
	}
	return string(data), nil
}

func (r *Reader) load(path string) (map[string][]byte, error) {
	r.mu.RLock()
	entries, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		return entries, nil
	}

	v, err, _ := r.group.Do(path, func() (any, error) {
		decoded, err := r.decode(path)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[path] = decoded
		r.mu.Unlock()
		return decoded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string][]byte), nil
}

// decodeZip reads every file entry of the archive into memory.
func decodeZip(path string) (map[string][]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		entries[f.Name] = data
	}
	return entries, nil
}
