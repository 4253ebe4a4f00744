// Copyright 2025 the decopy authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dircopy measures and copies directory trees with incremental
// progress reporting. It copies the *contents* of a source directory into a
// destination directory: the destination never gains a child named after
// the source.
package dircopy

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultChunkSize is the read/write granularity, and therefore the
// granularity of progress ticks.
const DefaultChunkSize = 256 * 1024

// ErrCopyAborted is returned when the progress callback stops the copy.
var ErrCopyAborted = errors.New("copy aborted")

// 📈 ProgressFunc receives the cumulative number of bytes written so far.
// Returning false aborts the copy.
type ProgressFunc func(copied int64) bool

// 🔧 Options control how a tree is measured and copied
type Options struct {
	// Overwrite replaces existing destination files. When false, existing
	// files and links are left untouched.
	Overwrite bool
	// ChunkSize is the per-tick copy granularity in bytes (DefaultChunkSize
	// when zero or negative).
	ChunkSize int
	// IgnorePatterns are doublestar globs matched against slash-separated
	// paths relative to the source root. Matching files are skipped;
	// matching directories are skipped with their whole subtree.
	IgnorePatterns []string
}

func (o Options) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return DefaultChunkSize
}

// 🔍 ignored checks a root-relative slash path against the ignore globs
func (o Options) ignored(logger *zerolog.Logger, rel string) bool {
	for _, pattern := range o.IgnorePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("path", rel).Str("pattern", pattern).Msg("path ignored by pattern")
			return true
		}
	}
	return false
}

// 📏 TreeSize returns the total byte size of the regular files under root
// that CopyTree would write with the same options. The ignore filter is the
// same one CopyTree applies, so progress percentages can reach 100.
func TreeSize(ctx context.Context, root string, opts Options) (int64, error) {
	logger := zerolog.Ctx(ctx)

	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if opts.ignored(logger, filepath.ToSlash(rel)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, errors.Errorf("sizing %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int64("bytes", total).Msg("measured source tree")
	return total, nil
}

// 📦 CopyTree copies the contents of src into dst, creating dst if needed.
// Directory permission bits are preserved, regular files are copied in
// chunks with progress invoked after every chunk and at file boundaries,
// and symlinks are recreated as links. It returns the number of bytes
// written, also on failure.
func CopyTree(ctx context.Context, src, dst string, opts Options, progress ProgressFunc) (int64, error) {
	logger := zerolog.Ctx(ctx)

	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, errors.Errorf("reading source %s: %w", src, err)
	}
	if !srcInfo.IsDir() {
		return 0, errors.Errorf("source %s is not a directory", src)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return 0, errors.Errorf("creating destination %s: %w", dst, err)
	}

	c := &copier{
		opts:     opts,
		progress: progress,
		logger:   logger,
		buf:      make([]byte, opts.chunkSize()),
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == src {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if opts.ignored(logger, filepath.ToSlash(rel)) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		return c.copyEntry(ctx, path, filepath.Join(dst, rel), d)
	})
	if err != nil {
		return c.written, errors.Errorf("copying %s into %s: %w", src, dst, err)
	}

	logger.Debug().Str("src", src).Str("dst", dst).Int64("bytes", c.written).Msg("copied tree")
	return c.written, nil
}

// 🚚 copier carries the per-destination copy state through the walk
type copier struct {
	opts     Options
	progress ProgressFunc
	logger   *zerolog.Logger
	buf      []byte
	written  int64
}

// tick reports cumulative progress, false meaning abort
func (c *copier) tick() bool {
	if c.progress == nil {
		return true
	}
	return c.progress(c.written)
}

func (c *copier) copyEntry(ctx context.Context, src, dst string, d fs.DirEntry) error {
	switch {
	case d.IsDir():
		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return errors.Errorf("creating directory %s: %w", dst, err)
		}
		return nil
	case d.Type()&fs.ModeSymlink != 0:
		return c.copySymlink(src, dst)
	case d.Type().IsRegular():
		return c.copyFile(ctx, src, dst)
	default:
		c.logger.Debug().Str("path", src).Str("mode", d.Type().String()).Msg("skipping irregular file")
		return nil
	}
}

func (c *copier) copyFile(ctx context.Context, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("reading %s: %w", src, err)
	}

	if !c.opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			c.logger.Debug().Str("path", dst).Msg("skipping existing file")
			return nil
		}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := in.Read(c.buf)
		if n > 0 {
			if _, writeErr := out.Write(c.buf[:n]); writeErr != nil {
				return errors.Errorf("writing %s: %w", dst, writeErr)
			}
			c.written += int64(n)
			if !c.tick() {
				return ErrCopyAborted
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Errorf("reading %s: %w", src, readErr)
		}
	}

	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}

	// File boundary tick, so empty files still produce an event.
	if !c.tick() {
		return ErrCopyAborted
	}
	return nil
}

func (c *copier) copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Errorf("reading link %s: %w", src, err)
	}
	if c.opts.Overwrite {
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return errors.Errorf("removing %s: %w", dst, err)
		}
	}
	if err := os.Symlink(target, dst); err != nil {
		if !c.opts.Overwrite && os.IsExist(err) {
			c.logger.Debug().Str("path", dst).Msg("skipping existing link")
			return nil
		}
		return errors.Errorf("linking %s: %w", dst, err)
	}
	return nil
}
