package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"awscli-update/internal/logger"
	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// ExtractArchive extracts src into dest, choosing the format from the file name.
// The official bundle is a .zip; tarballs and .7z archives are accepted for mirrors
// that repackage it. Entries that would land outside dest are rejected, as are
// symlinks pointing outside dest and entries written through an existing symlink.
func ExtractArchive(src, dest string) error {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := makeDir(dest, target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(dest, target, tr, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		default:
			logger.Debug("[DEBUG] skipping tar entry %s of type %c\n", hdr.Name, hdr.Typeflag)
		}
	}
	return nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractEntry(dest, f.Name, f.Mode(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractEntry(dest, f.Name, f.Mode(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes a single zip or 7z entry below dest.
func extractEntry(dest, name string, mode fs.FileMode, open func() (io.ReadCloser, error)) error {
	target, err := safeJoin(dest, name)
	if err != nil {
		return err
	}

	switch {
	case mode.IsDir():
		return makeDir(dest, target)
	case mode&fs.ModeSymlink != 0:
		rc, err := open()
		if err != nil {
			return err
		}
		link, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		return writeSymlink(dest, target, string(link))
	default:
		rc, err := open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return writeFile(dest, target, rc, mode.Perm())
	}
}

func makeDir(root, target string) error {
	if err := checkNoSymlinks(root, target); err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

// writeFile creates target with the archive's permission bits and copies r into it.
func writeFile(root, target string, r io.Reader, perm fs.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := makeDir(root, filepath.Dir(target)); err != nil {
		return err
	}
	if err := checkNoSymlinks(root, target); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeSymlink creates target pointing at linkname. Only relative links that
// resolve inside root are accepted.
func writeSymlink(root, target, linkname string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return fmt.Errorf("illegal symlink in archive: %s -> %s", target, linkname)
	}
	if !within(root, filepath.Join(filepath.Dir(target), linkname)) {
		return fmt.Errorf("illegal symlink in archive: %s -> %s", target, linkname)
	}
	if err := makeDir(root, filepath.Dir(target)); err != nil {
		return err
	}
	return os.Symlink(linkname, target)
}

// safeJoin joins an archive entry name onto root and rejects names escaping root.
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, name)
	if !within(root, target) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func within(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}

// checkNoSymlinks rejects target when any existing path component between root
// and target, target included, is a symlink.
func checkNoSymlinks(root, target string) error {
	rel, err := filepath.Rel(filepath.Clean(root), target)
	if err != nil {
		return err
	}
	p := filepath.Clean(root)
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		if part == "" || part == "." {
			continue
		}
		p = filepath.Join(p, part)
		info, err := os.Lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("illegal path in archive: %s passes through symlink %s", target, p)
		}
	}
	return nil
}

// makeExecutable adds the execute bits to path, and to every entry below it when path is a directory.
func makeExecutable(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.Chmod(p, info.Mode().Perm()|0o111)
	})
}
