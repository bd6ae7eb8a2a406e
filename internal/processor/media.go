package processor

import (
	"path/filepath"
	"strings"
)

// MediaFile is a discovered audio/video file.
type MediaFile struct {
	Path string
}

func NewMediaFile(path string) MediaFile {
	return MediaFile{Path: path}
}

// Dir is the directory holding the file.
func (m MediaFile) Dir() string {
	return filepath.Dir(m.Path)
}

// BaseNoExt is the file name without its final extension.
func (m MediaFile) BaseNoExt() string {
	base := filepath.Base(m.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TranscriptPath is where the transcript for this file lives. The suffix is
// also the cache key: a different suffix means a different transcript.
func (m MediaFile) TranscriptPath(suffix string) string {
	return filepath.Join(m.Dir(), m.BaseNoExt()+suffix)
}
