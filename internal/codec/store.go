package codec

import (
	"errors"
	"os"
	"path/filepath"
)

// FileStore keeps one drawing document on disk. Every write replaces the
// whole file.
type FileStore struct {
	Path string
}

// Write encodes doc and atomically replaces the file.
func (fs FileStore) Write(doc Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fs.Path)
	tmp, err := os.CreateTemp(dir, ".drawing-*.json")
	if err != nil {
		return &StorageIOError{Op: "write", Path: fs.Path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageIOError{Op: "write", Path: fs.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageIOError{Op: "write", Path: fs.Path, Err: err}
	}
	if err := os.Rename(tmp.Name(), fs.Path); err != nil {
		return &StorageIOError{Op: "write", Path: fs.Path, Err: err}
	}
	return nil
}

// Read loads and decodes the file. found is false, with a nil error, when
// there is no file yet.
func (fs FileStore) Read() (doc Document, found bool, err error) {
	data, err := os.ReadFile(fs.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, &StorageIOError{Op: "read", Path: fs.Path, Err: err}
	}
	doc, err = Decode(data)
	if err != nil {
		return Document{}, true, err
	}
	return doc, true, nil
}
