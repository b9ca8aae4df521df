package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
)

// PathCheck applies the File, Dir, Exists and Parent checks of a types.PathFlag set
type PathCheck struct {
	ValidatorMetadata
	Flags types.PathFlag
}

func (p *PathCheck) Apply(value any) (any, error) {
	path := stringOf(value)
	if err := checkPath(path, p.Flags); err != nil {
		return nil, err
	}
	return value, nil
}

// Path checks a path against flags and returns it unchanged
func Path(flags types.PathFlag) Validator {
	return &PathCheck{
		ValidatorMetadata: ValidatorMetadata{name: "path", description: "a path"},
		Flags:             flags,
	}
}

// StreamOpen checks a path like PathCheck and then opens it. The resulting *os.File belongs to the
// callable receiving it, which must close it.
type StreamOpen struct {
	ValidatorMetadata
	Flags types.PathFlag
	Mode  string
}

func (s *StreamOpen) Apply(value any) (any, error) {
	path := stringOf(value)
	if err := checkPath(path, s.Flags); err != nil {
		return nil, err
	}
	if s.Mode == "" {
		return path, nil
	}
	f, err := Open(path, s.Mode)
	if err != nil {
		return nil, &FormattedError{Message: err.Error(), Err: err}
	}
	return f, nil
}

// Stream checks a path against flags and, when mode is not empty, opens it in mode. Modes follow the familiar
// fopen letters: r, w, a, x, optionally followed by + and b or t.
func Stream(flags types.PathFlag, mode string) Validator {
	return &StreamOpen{
		ValidatorMetadata: ValidatorMetadata{name: "stream", description: "a file"},
		Flags:             flags,
		Mode:              mode,
	}
}

// Open opens path in an fopen-style mode. Failures are reported as *errs.IOOpenError.
func Open(path, mode string) (*os.File, error) {
	flag, err := OpenFlags(mode)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, &errs.IOOpenError{Path: path, Mode: mode, Err: err}
	}
	if fi, statErr := f.Stat(); statErr == nil && fi.IsDir() {
		_ = f.Close()
		return nil, &errs.IOOpenError{
			Path: path,
			Mode: mode,
			Err:  &os.PathError{Op: "open", Path: path, Err: syscall.EISDIR},
		}
	}
	return f, nil
}

// OpenFlags converts an fopen-style mode to os.OpenFile flags
func OpenFlags(mode string) (int, error) {
	if mode == "" {
		return 0, fmt.Errorf(errs.FmtErrorWithString, errs.ErrInvalidMode, "empty mode")
	}
	plus := false
	for _, c := range mode[1:] {
		switch c {
		case '+':
			plus = true
		case 'b', 't':
		default:
			return 0, fmt.Errorf(errs.FmtErrorWithString, errs.ErrInvalidMode, mode)
		}
	}

	access := os.O_WRONLY
	if plus {
		access = os.O_RDWR
	}
	switch mode[0] {
	case 'r':
		if plus {
			return os.O_RDWR, nil
		}
		return os.O_RDONLY, nil
	case 'w':
		return access | os.O_CREATE | os.O_TRUNC, nil
	case 'a':
		return access | os.O_CREATE | os.O_APPEND, nil
	case 'x':
		return access | os.O_CREATE | os.O_EXCL, nil
	}
	return 0, fmt.Errorf(errs.FmtErrorWithString, errs.ErrInvalidMode, mode)
}

func checkPath(path string, flags types.PathFlag) error {
	head, tail := splitPath(path)
	if flags.Has(types.File) && tail == "" {
		return Errorf("File '%s' does not exist.", path)
	}
	if flags.Has(types.Dir) && tail != "" {
		return Errorf("Path '%s' does not end with %c", path, filepath.Separator)
	}
	if flags.Has(types.Exists) && !exists(path) {
		return Errorf("Path '%s' does not exist.", path)
	}
	if flags.Has(types.Parent) {
		parent := head
		if parent == "" {
			parent = "."
		}
		if !exists(parent) {
			return Errorf("Parent directory '%s' does not exist.", head)
		}
	}
	return nil
}

// splitPath returns the directory without its trailing separators (unless it is the root) and the final element,
// which is empty when path ends with a separator.
func splitPath(path string) (head, tail string) {
	dir, file := filepath.Split(path)
	trimmed := strings.TrimRight(dir, string(filepath.Separator))
	if trimmed == "" && dir != "" {
		trimmed = dir[:1]
	}
	return trimmed, file
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
