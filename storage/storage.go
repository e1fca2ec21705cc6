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
	"io"
)

// Backend is an append-or-overwrite blob store. Keys are a (prefix, name)
// pair rendered as prefix/name. Implementations must make a blob visible
// only after its writer is closed, with the content fully durable first:
// readers never observe partial artifacts.
type Backend interface {
	// Put opens a writer for prefix/name. The blob replaces any existing
	// blob under the same key when the writer is closed.
	Put(ctx context.Context, prefix string, name string) (io.WriteCloser, error)
	// Get opens a reader for prefix/name.
	Get(ctx context.Context, prefix string, name string) (io.ReadCloser, error)
	// Exists reports whether prefix/name holds a blob.
	Exists(ctx context.Context, prefix string, name string) (bool, error)
	// Delete removes every blob under prefix.
	Delete(ctx context.Context, prefix string) error
}

// ReadAll reads the whole blob at prefix/name.
func ReadAll(ctx context.Context, backend Backend, prefix string, name string) ([]byte, error) {
	reader, err := backend.Get(ctx, prefix, name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// WriteAll writes data as the blob at prefix/name, closing the writer so the
// blob becomes visible.
func WriteAll(ctx context.Context, backend Backend, prefix string, name string, data []byte) error {
	writer, err := backend.Put(ctx, prefix, name)
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
