// Package statement finds and checks local bank and broker statement files
// before they are uploaded.
package statement

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theirongolddev/finboard/internal/api"
)

// MaxSize is the largest statement the server accepts.
const MaxSize = 10 << 20

// Statement types sent with an upload.
const (
	TypeCSV   = "CSV"
	TypeExcel = "EXCEL"
	TypePDF   = "PDF"
)

var (
	ErrUnsupported = errors.New("statement: unsupported file type")
	ErrEmpty       = errors.New("statement: file is empty")
	ErrTooLarge    = errors.New("statement: file exceeds 10 MB")
)

// File is a discovered statement.
type File struct {
	Path string
	Name string
	Type string
	Size int64
}

func statementTypeFor(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".csv":
		return TypeCSV, true
	case ".xls", ".xlsx":
		return TypeExcel, true
	case ".pdf":
		return TypePDF, true
	}
	return "", false
}

// TypeFor returns the upload statement type for a path.
func TypeFor(path string) (string, error) {
	t, ok := statementTypeFor(filepath.Ext(path))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
	}
	return t, nil
}

// Scan walks dir and returns every statement file, sorted by path.
// A missing directory yields no files.
func Scan(dir string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("statement: %s is not a directory", dir)
	}

	var files []File
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		t, ok := statementTypeFor(filepath.Ext(path))
		if !ok {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		files = append(files, File{Path: path, Name: d.Name(), Type: t, Size: fi.Size()})
		return nil
	})
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// Validate checks that path is a supported, non-empty statement within MaxSize.
func Validate(path string) (File, error) {
	t, err := TypeFor(path)
	if err != nil {
		return File{}, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("statement: %w", err)
	}
	if fi.IsDir() {
		return File{}, fmt.Errorf("statement: %s is a directory", path)
	}
	switch {
	case fi.Size() == 0:
		return File{}, fmt.Errorf("%w: %s", ErrEmpty, fi.Name())
	case fi.Size() > MaxSize:
		return File{}, fmt.Errorf("%w: %s", ErrTooLarge, fi.Name())
	}
	return File{Path: path, Name: fi.Name(), Type: t, Size: fi.Size()}, nil
}

// Open validates path and opens it as an upload. The caller closes the
// returned closer once the upload returns.
func Open(path string) (api.Upload, io.Closer, File, error) {
	f, err := Validate(path)
	if err != nil {
		return api.Upload{}, nil, File{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return api.Upload{}, nil, File{}, fmt.Errorf("statement: %w", err)
	}
	return api.Upload{Filename: f.Name, Content: fh}, fh, f, nil
}
