package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestScanNestedTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/video1.mp4", "a/b/clip.mov", "a/notes.txt")

	res, err := New([]string{".mp4", ".mov"}).Scan(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a/video1.mp4", "a/b/clip.mov"}, rel(t, root, res.Files))
	assert.ElementsMatch(t, []string{"a", "a/b"}, rel(t, root, res.Subdirectories))
}

func TestScanFiltering(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Talk.MP4",
		"song.Wav",
		".hidden.mp4",
		"readme.md",
		"noext",
		".config/inside.mp4",
		"deep/er/still/deeper/lecture.wav",
		"deep/er/skip.doc",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.mp4"), 0755))

	res, err := New([]string{".mp4", ".wav"}).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		".config/inside.mp4",
		"Talk.MP4",
		"deep/er/still/deeper/lecture.wav",
		"song.Wav",
	}, rel(t, root, res.Files), "files are sorted, case-insensitive, hidden directories still traversed")

	assert.Contains(t, rel(t, root, res.Subdirectories), "folder.mp4")
	assert.NotContains(t, rel(t, root, res.Files), "folder.mp4", "directories are never reported as files")
	assert.Contains(t, rel(t, root, res.Subdirectories), ".config")
}

func TestScanEmptyAllowList(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.mp4", "sub/b.wav")

	res, err := New(nil).Scan(root)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, []string{"sub"}, rel(t, root, res.Subdirectories))
}

func TestScanFollowsSymlinkedDirectory(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "linked.mp4")
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling.mp4")))

	res, err := New([]string{".mp4"}).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"link/linked.mp4"}, rel(t, root, res.Files))
	assert.Equal(t, []string{"link"}, rel(t, root, res.Subdirectories))
}

func TestScanMissingRoot(t *testing.T) {
	_, err := New([]string{".mp4"}).Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMatch(t *testing.T) {
	s := New([]string{".MP4", ".wav"})

	tests := []struct {
		name string
		want bool
	}{
		{"video.mp4", true},
		{"VIDEO.Mp4", true},
		{"audio.wav", true},
		{".video.mp4", false},
		{"video.mp4.txt", false},
		{"video_auto_transcript.txt", false},
		{"mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Match(tt.name))
		})
	}
}
