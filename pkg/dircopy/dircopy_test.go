package dircopy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

// buildTree creates a small source tree and returns its root and total size.
func buildTree(t *testing.T) (string, int64) {
	t.Helper()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "app.bin"), "binary payload", 0755)
	writeFile(t, filepath.Join(src, "config", "settings.yaml"), "port: 8080\n", 0644)
	writeFile(t, filepath.Join(src, "assets", "logo.svg"), "<svg/>", 0644)
	writeFile(t, filepath.Join(src, "empty.txt"), "", 0644)
	return src, int64(len("binary payload") + len("port: 8080\n") + len("<svg/>"))
}

func TestCopyTree_ContentOnly(t *testing.T) {
	ctx := context.Background()
	src, total := buildTree(t)
	dst := t.TempDir()

	written, err := CopyTree(ctx, src, dst, Options{Overwrite: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, total, written)

	// Children of the source land directly in the destination.
	_, err = os.Stat(filepath.Join(dst, filepath.Base(src)))
	assert.True(t, os.IsNotExist(err), "source directory itself must not be nested")

	got, err := os.ReadFile(filepath.Join(dst, "config", "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "port: 8080\n", string(got))

	info, err := os.Stat(filepath.Join(dst, "app.bin"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "permission bits must carry over")
}

func TestCopyTree_Overwrite(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		want      string
	}{
		{
			name:      "overwrite_replaces_existing",
			overwrite: true,
			want:      "new content",
		},
		{
			name:      "no_overwrite_keeps_existing",
			overwrite: false,
			want:      "old content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			src := t.TempDir()
			dst := t.TempDir()
			writeFile(t, filepath.Join(src, "file.txt"), "new content", 0644)
			writeFile(t, filepath.Join(dst, "file.txt"), "old content", 0644)

			_, err := CopyTree(ctx, src, dst, Options{Overwrite: tt.overwrite}, nil)
			require.NoError(t, err)

			got, err := os.ReadFile(filepath.Join(dst, "file.txt"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCopyTree_IgnorePatterns(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "keep.txt"), "keep", 0644)
	writeFile(t, filepath.Join(src, "debug.log"), "noise", 0644)
	writeFile(t, filepath.Join(src, "cache", "blob"), "noise", 0644)
	writeFile(t, filepath.Join(src, "nested", "trace.log"), "noise", 0644)

	opts := Options{
		Overwrite:      true,
		IgnorePatterns: []string{"**/*.log", "cache"},
	}

	size, err := TreeSize(ctx, src, opts)
	require.NoError(t, err)

	written, err := CopyTree(ctx, src, dst, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, size, written, "sizing and copying must agree on the ignore filter")
	assert.Equal(t, int64(len("keep")), written)

	for _, excluded := range []string{"debug.log", "cache", filepath.Join("nested", "trace.log")} {
		_, err := os.Stat(filepath.Join(dst, excluded))
		assert.True(t, os.IsNotExist(err), "%s should have been ignored", excluded)
	}
	_, err = os.Stat(filepath.Join(dst, "keep.txt"))
	assert.NoError(t, err)
}

func TestCopyTree_ProgressIsCumulative(t *testing.T) {
	ctx := context.Background()
	src, total := buildTree(t)
	dst := t.TempDir()

	var ticks []int64
	written, err := CopyTree(ctx, src, dst, Options{Overwrite: true, ChunkSize: 4}, func(copied int64) bool {
		ticks = append(ticks, copied)
		return true
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticks)

	for i := 1; i < len(ticks); i++ {
		assert.GreaterOrEqual(t, ticks[i], ticks[i-1], "progress must never go backwards")
	}
	assert.Equal(t, total, ticks[len(ticks)-1], "final tick must cover the whole tree")
	assert.Equal(t, total, written)
	assert.Greater(t, len(ticks), 4, "small chunks should produce several ticks")
}

func TestCopyTree_AbortStopsCopy(t *testing.T) {
	ctx := context.Background()
	src, total := buildTree(t)
	dst := t.TempDir()

	calls := 0
	written, err := CopyTree(ctx, src, dst, Options{Overwrite: true, ChunkSize: 4}, func(copied int64) bool {
		calls++
		return calls < 2
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyAborted)
	assert.Less(t, written, total, "abort must stop before the tree is done")
}

func TestCopyTree_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src, _ := buildTree(t)
	dst := t.TempDir()

	_, err := CopyTree(ctx, src, dst, Options{Overwrite: true}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyTree_Symlink(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "target.txt"), "pointed at", 0644)
	require.NoError(t, os.Symlink("target.txt", filepath.Join(src, "link")))

	_, err := CopyTree(ctx, src, dst, Options{Overwrite: true}, nil)
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	assert.Equal(t, "target.txt", target)
}

func TestCopyTree_SourceErrors(t *testing.T) {
	tests := []struct {
		name        string
		src         func(t *testing.T) string
		errContains string
	}{
		{
			name: "missing_source",
			src: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			errContains: "reading source",
		},
		{
			name: "source_is_a_file",
			src: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "plain.txt")
				writeFile(t, path, "not a dir", 0644)
				return path
			},
			errContains: "is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CopyTree(context.Background(), tt.src(t), t.TempDir(), Options{Overwrite: true}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestTreeSize(t *testing.T) {
	ctx := context.Background()

	t.Run("empty_tree", func(t *testing.T) {
		size, err := TreeSize(ctx, t.TempDir(), Options{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), size)
	})

	t.Run("counts_regular_files_only", func(t *testing.T) {
		src := t.TempDir()
		writeFile(t, filepath.Join(src, "a.txt"), "12345", 0644)
		writeFile(t, filepath.Join(src, "sub", "b.txt"), "123", 0644)
		require.NoError(t, os.Symlink("a.txt", filepath.Join(src, "link")))

		size, err := TreeSize(ctx, src, Options{})
		require.NoError(t, err)
		assert.Equal(t, int64(8), size)
	})

	t.Run("missing_root", func(t *testing.T) {
		_, err := TreeSize(ctx, filepath.Join(t.TempDir(), "gone"), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sizing")
	})
}
