// Package content loads guided paths and their lesson content tables from
// YAML or JSON files.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/flow"
	"golang.org/x/sync/errgroup"
)

//go:embed paths/*.yaml
var builtin embed.FS

// loadConcurrency bounds how many files are parsed at once.
const loadConcurrency = 8

type loaded struct {
	file string
	cat  *domain.Category
	path *domain.GuidedPath
}

// Builtin returns the content files compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "paths")
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return sub
}

// Default loads the catalog compiled into the binary.
func Default(ctx context.Context) (*Catalog, error) {
	return LoadFS(ctx, Builtin())
}

// LoadDir loads every content file under dir.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir))
}

// Files lists the content files in fsys, sorted by path.
func Files(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && path.Base(p)[0] == '.' {
				return fs.SkipDir
			}
			return nil
		}
		if IsContentFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing content files: %w", err)
	}
	return files, nil
}

// LoadFS parses, validates and converts every content file in fsys. Files
// are processed concurrently. All per-file problems are returned together,
// each as a *ValidationError.
func LoadFS(ctx context.Context, fsys fs.FS) (*Catalog, error) {
	files, err := Files(fsys)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no content files found")
	}

	results := make([]*loaded, len(files))
	problems := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := loadFile(fsys, f)
			if err != nil {
				problems[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	cat := newCatalog()
	for _, r := range results {
		if err := cat.add(r.cat, r.path); err != nil {
			problems = append(problems, &ValidationError{File: r.file, Problems: []error{err}})
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	cat.sort()
	return cat, nil
}

func loadFile(fsys fs.FS, name string) (*loaded, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ValidationError{File: name, Problems: []error{err}}
	}
	pf, err := Parse(name, data)
	if err != nil {
		return nil, &ValidationError{File: name, Problems: []error{err}}
	}
	if errs := Validate(pf); len(errs) > 0 {
		return nil, &ValidationError{File: name, Problems: errs}
	}

	cat, p := Convert(pf)
	for _, d := range p.Days {
		if _, err := flow.New(d.Lesson); err != nil {
			return nil, &ValidationError{File: name, Problems: []error{fmt.Errorf("day %d: %w", d.Day, err)}}
		}
	}
	return &loaded{file: name, cat: cat, path: p}, nil
}

// CheckFile validates one file without building a catalog. The returned
// slice is empty for a valid file.
func CheckFile(fsys fs.FS, name string) []error {
	_, err := loadFile(fsys, name)
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Problems
	}
	return []error{err}
}
