/*
   Copyright 2024 The Strata Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/stratatech/strata/core"
)

// LocalBackend stores blobs as files under a root directory. Writers write
// to a temporary file, fsync, then rename into place, so a blob referenced
// by a later artifact is always durable before it becomes visible.
type LocalBackend struct {
	fs   afero.Fs
	root string
}

func NewLocalBackend(root string) *LocalBackend {
	return &LocalBackend{fs: afero.NewOsFs(), root: root}
}

// NewMemBackend returns a backend over an in-memory filesystem, used by
// tests.
func NewMemBackend() *LocalBackend {
	return &LocalBackend{fs: afero.NewMemMapFs(), root: "/"}
}

func (b *LocalBackend) path(prefix string, name string) string {
	return path.Join(b.root, prefix, name)
}

func (b *LocalBackend) Put(ctx context.Context, prefix string, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := b.path(prefix, name)
	if err := b.fs.MkdirAll(path.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %s", core.ErrIo, path.Dir(target), err)
	}
	tmp, err := afero.TempFile(b.fs, path.Dir(target), "."+name+".tmp-")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temporary file for %s: %s", core.ErrIo, target, err)
	}
	return &localWriter{fs: b.fs, file: tmp, target: target}, nil
}

func (b *LocalBackend) Get(ctx context.Context, prefix string, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := b.fs.Open(b.path(prefix, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s not found", core.ErrIo, prefix, name)
		}
		return nil, fmt.Errorf("%w: opening %s/%s: %s", core.ErrIo, prefix, name, err)
	}
	return file, nil
}

func (b *LocalBackend) Exists(ctx context.Context, prefix string, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := afero.Exists(b.fs, b.path(prefix, name))
	if err != nil {
		return false, fmt.Errorf("%w: %s", core.ErrIo, err)
	}
	return ok, nil
}

func (b *LocalBackend) Delete(ctx context.Context, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.fs.RemoveAll(path.Join(b.root, prefix)); err != nil {
		return fmt.Errorf("%w: deleting %s: %s", core.ErrIo, prefix, err)
	}
	return nil
}

type localWriter struct {
	fs     afero.Fs
	file   afero.File
	target string
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

// Close fsyncs the temporary file and renames it into place. The rename is
// what makes the blob visible to readers.
func (w *localWriter) Close() error {
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return fmt.Errorf("%w: syncing %s: %s", core.ErrIo, w.target, err)
	}
	name := w.file.Name()
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %s", core.ErrIo, w.target, err)
	}
	if err := w.fs.Rename(name, w.target); err != nil {
		return fmt.Errorf("%w: publishing %s: %s", core.ErrIo, w.target, err)
	}
	return nil
}
