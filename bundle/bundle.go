/*
 * bundle.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package bundle packs the reproducibility data (datasets, results and
// scripts directories) into a single zstd-compressed tar archive, and
// unpacks such archives safely.
package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultDirs are the directories a reproducibility bundle carries.
var DefaultDirs = []string{"datasets", "results", "scripts"}

// Pack writes the given directories under root into a .tar.zst archive
// at outfile. Missing directories are skipped; packing nothing is an
// error. File entries are stored with paths relative to root, in
// sorted order so repeated packs of the same tree are identical.
func Pack(root, outfile string, dirs []string) error {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	var files []string
	for _, d := range dirs {
		top := filepath.Join(root, d)
		if _, err := os.Stat(top); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(top, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", top, err)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("nothing to pack under %s", root)
	}
	sort.Strings(files)

	f, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outfile, err)
	}
	defer f.Close()
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("starting compressor: %w", err)
	}
	tw := tar.NewWriter(zw)
	for _, path := range files {
		if err := packFile(tw, root, path); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing compressor: %w", err)
	}
	return f.Close()
}

func packFile(tw *tar.Writer, root, path string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header for %s: %w", rel, err)
	}
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	if _, err := io.Copy(tw, in); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// Unpack extracts a .tar.zst archive into root. Entries that would
// escape root are rejected.
func Unpack(archive, root string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archive, err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("starting decompressor: %w", err)
	}
	defer zr.Close()
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}
		dest, err := safePath(root, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
				hdr.FileInfo().Mode().Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported entry type %d for %s", hdr.Typeflag, hdr.Name)
		}
	}
}

// safePath joins name onto root and rejects absolute names and names
// that climb out of root.
func safePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path in archive: %s", name)
	}
	dest := filepath.Join(root, filepath.FromSlash(name))
	if dest != filepath.Clean(dest) ||
		!strings.HasPrefix(dest, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes extraction root: %s", name)
	}
	return dest, nil
}
