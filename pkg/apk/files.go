package apk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// fileClass says where, if anywhere, an installed file belongs in
// persistent storage.
type fileClass int

const (
	classNone fileClass = iota
	classBinary
	classLibrary
)

// Standard locations apk installs executables and libraries into.
var (
	binDirs = []string{"/usr/bin", "/usr/sbin", "/bin", "/sbin", "/usr/local/bin"}
	libDirs = []string{"/usr/lib", "/lib", "/usr/local/lib"}

	// Shared objects: libfoo.so, libfoo.so.1, libfoo.so.1.2.3
	sharedLibPattern = regexp.MustCompile(`\.so(\.\d+)*$`)
)

// classify decides whether an owned file path is a candidate for
// relocation. Binary candidates still need the executable-regular-file
// check against the live filesystem; library candidates are classified by
// name alone.
func classify(path string) fileClass {
	if underAny(path, binDirs) {
		return classBinary
	}
	if underAny(path, libDirs) && sharedLibPattern.MatchString(filepath.Base(path)) {
		return classLibrary
	}
	return classNone
}

// underAny reports whether path lives under one of the given directories.
func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+"/") {
			return true
		}
	}
	return false
}

// fileExists returns true if the file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isExecutableFile reports whether path is an existing regular file with
// any execute bit set.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// copyPreserving copies src into dstDir keeping the file mode, and returns
// the destination path.
func copyPreserving(src, dstDir string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	dst := filepath.Join(dstDir, filepath.Base(src))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", dst, err)
	}

	// O_CREATE only applies the mode to new files; a re-install must
	// refresh the mode on an existing copy too.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}

	return dst, nil
}
