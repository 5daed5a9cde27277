package apply

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrWrite is the kind of every error returned by WriteAtomic.
var ErrWrite = errors.New("cannot write file")

// WriteError is returned by WriteAtomic. It matches both ErrWrite and the
// underlying cause with errors.Is.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Err, ErrWrite)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// DefaultMode is used for files that did not exist before.
const DefaultMode os.FileMode = 0o644

// Options controls how file application is performed.
// BackupSuffix is used only when Backup is true; if empty, ".bak" is used.
// Writes are done to a temp file in the same directory and then atomically renamed.
// File mode (permissions) of the original is preserved on the new file; a new
// file gets Mode, or DefaultMode if Mode is zero.
// The parent directory is fsynced on platforms that support it (best-effort on Windows).
type Options struct {
	Backup       bool
	BackupSuffix string
	Mode         os.FileMode
}

// Outcome describes what WriteAtomic did.
type Outcome struct {
	Created    bool
	BackupPath string
}

// WriteAtomic writes data to path safely:
//  1. stat the existing file (a missing file is created)
//  2. optionally create a backup of an existing file (unique name)
//  3. write to a temp file in the same dir, fsync, close
//  4. atomic rename over the original
//  5. fsync the parent directory (best-effort)
//
// Errors are *WriteError values.
func WriteAtomic(path string, data []byte, opts Options) (Outcome, error) {
	out, err := writeAtomic(path, data, opts)
	if err != nil {
		return out, errors.WithStack(&WriteError{Path: path, Err: err})
	}
	return out, nil
}

func writeAtomic(path string, data []byte, opts Options) (Outcome, error) {
	var out Outcome
	// 1) stat original (preserving mode)
	mode := opts.Mode
	if mode == 0 {
		mode = DefaultMode
	}
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		out.Created = true
	case err != nil:
		return out, fmt.Errorf("apply: stat: %w", err)
	case !info.Mode().IsRegular():
		return out, errors.New("apply: stat: not a regular file")
	default:
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	// 2) optional backup
	if opts.Backup && !out.Created {
		bak := opts.BackupSuffix
		if bak == "" {
			bak = ".bak"
		}
		backupPath, berr := uniqueBackupPath(dir, base, bak)
		if berr != nil {
			return out, berr
		}
		if err := copyFile(path, backupPath, mode); err != nil {
			return out, fmt.Errorf("apply: backup: %w", err)
		}
		out.BackupPath = backupPath
	}

	// 3) write temp in same dir
	tf, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return out, fmt.Errorf("apply: temp: %w", err)
	}
	renamed := false
	defer func(name string) {
		if !renamed {
			_ = os.Remove(name)
		}
	}(tf.Name())
	if _, err := tf.Write(data); err != nil {
		return out, stderrors.Join(fmt.Errorf("apply: write temp: %w", err), tf.Close())
	}
	if err := tf.Chmod(mode); err != nil {
		return out, stderrors.Join(fmt.Errorf("apply: chmod temp: %w", err), tf.Close())
	}
	if err := tf.Sync(); err != nil {
		return out, stderrors.Join(fmt.Errorf("apply: fsync temp: %w", err), tf.Close())
	}
	if err := tf.Close(); err != nil {
		return out, fmt.Errorf("apply: close temp: %w", err)
	}

	// 4) atomic replace
	if err := os.Rename(tf.Name(), path); err != nil {
		return out, fmt.Errorf("apply: rename: %w", err)
	}
	renamed = true

	// 5) fsync parent dir (best effort; may not work on Windows)
	_ = syncDir(dir) // best-effort; ignore error

	return out, nil
}

func uniqueBackupPath(dir, base, suffix string) (string, error) {
	cand := filepath.Join(dir, base+suffix)
	if _, err := os.Lstat(cand); os.IsNotExist(err) {
		return cand, nil
	}
	for i := 1; i < 1000; i++ {
		p := filepath.Join(dir, fmt.Sprintf("%s%s.%d", base, suffix, i))
		if _, err := os.Lstat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", fmt.Errorf("apply: backup: too many existing backups for %s", base)
}

func copyFile(src, dst string, mode os.FileMode) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	w, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	return w.Sync()
}

func syncDir(dir string) error {
	df, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = df.Close() }()
	return df.Sync()
}
