// Package packager materializes a validated skill directory into a single
// deterministic archive. The archive is a zip container with a .skill
// extension whose top-level entry is the skill's name, so unpacking always
// reproduces a directory literally named after the skill regardless of what
// the source directory was called on disk. Timestamps and permissions inside
// the archive are normalized so packaging the same input twice produces
// byte-identical output.
package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"

	"github.com/skillforge/skillforge/pkg/skill"
	"github.com/skillforge/skillforge/pkg/validator"
)

// Extension is the archive file extension.
const Extension = ".skill"

// archiveEpoch is the normalized modification time for every archive entry.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// entryMode is the normalized permission mode for every archive entry.
const entryMode = 0o644

// PackageCode identifies the category of a packaging failure.
type PackageCode string

const (
	// CodeValidationFailed means the validation report has errors; packaging
	// fails closed rather than shipping a misleading artifact.
	CodeValidationFailed PackageCode = "validation-failed"
	// CodeEmptyDirectory means zero files would be included in the archive.
	CodeEmptyDirectory PackageCode = "empty-directory"
	// CodeIOFailure means a read or write error occurred; no partial archive
	// is left behind.
	CodeIOFailure PackageCode = "io-failure"
)

// PackageError is returned by Package on any precondition or I/O failure.
type PackageError struct {
	Code   PackageCode
	Errors []validator.Finding // set for CodeValidationFailed
	Err    error               // set for CodeIOFailure
}

func (e *PackageError) Error() string {
	switch e.Code {
	case CodeValidationFailed:
		return fmt.Sprintf("validation failed with %d error(s)", len(e.Errors))
	case CodeEmptyDirectory:
		return "skill directory contains no packageable files"
	case CodeIOFailure:
		return fmt.Sprintf("packaging I/O failure: %v", e.Err)
	}
	return string(e.Code)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}

// ignoredEntries excludes version-control directories, editor swap files, OS
// metadata files and python build artifacts from the archive. Patterns match
// path base names.
var ignoredEntries = compileGlobs(
	".*", // hidden entries, including .git, .svn, .hg, .DS_Store
	"__pycache__",
	"node_modules",
	"*.pyc",
	"*.pyo",
	"*.swp",
	"*.swo",
	"*~",
	"Thumbs.db",
)

func compileGlobs(patterns ...string) []glob.Glob {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, glob.MustCompile(pattern))
	}
	return compiled
}

func ignored(name string) bool {
	for _, g := range ignoredEntries {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Package archives the skill directory into outputDir and returns the path
// of the written archive. It refuses to run on an invalid report. The write
// is all-or-nothing: the archive is assembled at a temporary path and
// renamed into place only on full success, and a lock on the destination
// serializes concurrent packaging of the same output path. The lock file
// (<name>.skill.lock) stays behind next to the archive: unlinking it while
// another packager is queued on it would let two writers proceed at once.
func Package(def *skill.Definition, report *validator.Report, outputDir string) (string, error) {
	if report == nil || !report.IsValid() {
		pkgErr := &PackageError{Code: CodeValidationFailed}
		if report != nil {
			pkgErr.Errors = report.Errors
		}
		return "", pkgErr
	}

	files, err := enumerate(def.Root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", &PackageError{Code: CodeEmptyDirectory}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", &PackageError{Code: CodeIOFailure, Err: err}
	}

	dest := filepath.Join(outputDir, def.Name+Extension)

	// Two processes packaging the same output path must not interleave
	// their rename steps.
	mu := lockedfile.MutexAt(dest + ".lock")
	unlock, err := mu.Lock()
	if err != nil {
		return "", &PackageError{Code: CodeIOFailure, Err: err}
	}
	defer unlock()

	tmp := filepath.Join(outputDir, fmt.Sprintf(".%s-%s.tmp", def.Name, uuid.NewString()))
	if err := writeArchive(tmp, def.Root, def.Name, files); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", &PackageError{Code: CodeIOFailure, Err: err}
	}

	return dest, nil
}

// enumerate lists every packageable file under root in lexicographic order
// by relative path. Enumeration errors are collected rather than
// short-circuited so one failed run reports every unreadable entry.
func enumerate(root string) ([]string, error) {
	var files []string
	var merr *multierror.Error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "failed to read %s", path))
			return nil
		}

		if path != root && ignored(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			merr = multierror.Append(merr, err)
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		merr = multierror.Append(merr, walkErr)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, &PackageError{Code: CodeIOFailure, Err: err}
	}

	sort.Strings(files)
	return files, nil
}

func writeArchive(tmp, root, name string, files []string) error {
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &PackageError{Code: CodeIOFailure, Err: err}
	}

	zw := zip.NewWriter(out)
	for _, rel := range files {
		if err := writeEntry(zw, root, name, rel); err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return &PackageError{Code: CodeIOFailure, Err: err}
	}
	if err := out.Close(); err != nil {
		return &PackageError{Code: CodeIOFailure, Err: err}
	}
	return nil
}

func writeEntry(zw *zip.Writer, root, name, rel string) error {
	src, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return &PackageError{Code: CodeIOFailure, Err: err}
	}
	defer src.Close()

	header := &zip.FileHeader{
		Name:     name + "/" + rel,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	}
	header.SetMode(entryMode)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return &PackageError{Code: CodeIOFailure, Err: err}
	}
	if _, err := io.Copy(w, src); err != nil {
		return &PackageError{Code: CodeIOFailure, Err: err}
	}
	return nil
}
