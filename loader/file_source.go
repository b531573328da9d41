package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// FileSource reads invoices from a directory tree, one <id>.json per invoice.
type FileSource struct {
	fsys fs.FS
}

// NewFileSource returns a source backed by fsys.
func NewFileSource(fsys fs.FS) *FileSource {
	return &FileSource{fsys: fsys}
}

// NewDirSource returns a source reading from dir on disk. Edits to files in
// dir are picked up by the next fetch.
func NewDirSource(dir string) *FileSource {
	return NewFileSource(os.DirFS(dir))
}

func (s *FileSource) Fetch(ctx context.Context, id string) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}
	name := ResourceName(id)

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError("fetch", id, ErrNotFound, nil)
		}
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}
	if info.IsDir() {
		return nil, newLoadError("fetch", id, ErrNotFound, nil)
	}

	body, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError("fetch", id, ErrNotFound, nil)
		}
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}
	return &Resource{Body: body, Version: NewVersion(info.ModTime(), body)}, nil
}
