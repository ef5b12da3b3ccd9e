package ingest

import (
	"context"
	"path/filepath"

	"washrag/src/fsutil"
)

// FileSink writes chunk manifests to a local directory, one
// <document_id>.json per document.
type FileSink struct {
	dir string
	fs  fsutil.FileStore
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string, fs fsutil.FileStore) *FileSink {
	return &FileSink{dir: dir, fs: fs}
}

func (s *FileSink) PutChunks(_ context.Context, documentID string, payload []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, documentID+".json"), payload)
}
