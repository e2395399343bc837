package detector

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// ScanOptions bounds a directory scan
type ScanOptions struct {
	MaxDepth        int
	MaxContentChars int
	MaxFiles        int
	Concurrency     int
}

const (
	DefaultScanDepth       = 3
	DefaultMaxContentChars = 2000
	DefaultMaxFiles        = 200
	DefaultScanConcurrency = 8
)

// DefaultScanOptions returns the standard scan limits
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxDepth:        DefaultScanDepth,
		MaxContentChars: DefaultMaxContentChars,
		MaxFiles:        DefaultMaxFiles,
		Concurrency:     DefaultScanConcurrency,
	}
}

func (o ScanOptions) withDefaults() ScanOptions {
	d := DefaultScanOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.MaxContentChars <= 0 {
		o.MaxContentChars = d.MaxContentChars
	}
	if o.MaxFiles <= 0 {
		o.MaxFiles = d.MaxFiles
	}
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	return o
}

var skipDirs = map[string]bool{
	".git": true, "node_modules": true, ".venv": true, "venv": true, "dist": true,
	"build": true, "vendor": true, "__pycache__": true, ".next": true, "target": true,
}

var allowedNames = map[string]bool{
	"package.json": true, "requirements.txt": true, "Pipfile": true, "pyproject.toml": true,
	"composer.json": true, "Dockerfile": true, "docker-compose.yml": true, "docker-compose.yaml": true,
	"compose.yml": true, "compose.yaml": true, ".htaccess": true, ".env": true, ".env.example": true,
	"artisan": true, "manage.py": true, "Procfile": true, "nginx.conf": true,
}

// lockfiles are collected by name only; their content carries no signal
var lockfiles = map[string]bool{
	"package-lock.json": true, "yarn.lock": true, "pnpm-lock.yaml": true, "bun.lock": true, "bun.lockb": true,
	"uv.lock": true, "pdm.lock": true, "poetry.lock": true, "Pipfile.lock": true, "composer.lock": true,
}

var allowedExts = map[string]bool{
	".js": true, ".mjs": true, ".ts": true, ".jsx": true, ".tsx": true, ".py": true, ".php": true,
	".json": true, ".yml": true, ".yaml": true, ".toml": true, ".conf": true, ".html": true,
}

// FSReader provides filesystem operations abstracted over fs.FS
type FSReader struct {
	fsys fs.FS
}

// NewFSReader creates a new FSReader for the given filesystem
func NewFSReader(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

// Has checks if a file exists at the given path
func (r *FSReader) Has(p string) bool {
	_, err := fs.Stat(r.fsys, p)
	return err == nil
}

// Read returns at most limit characters of a file. Unreadable files read as
// empty, which the classifier treats as carrying no signal.
func (r *FSReader) Read(p string, limit int) string {
	f, err := r.fsys.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(limit)*utf8.UTFMax))
	if err != nil {
		return ""
	}
	return truncateChars(string(data), limit)
}

// ScanTree walks the filesystem and returns the allow-listed files within
// the depth bound, in lexical order
func (r *FSReader) ScanTree(maxDepth, maxFiles int) ([]string, error) {
	var files []string

	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == "." {
			return nil
		}

		depth := strings.Count(p, "/")
		if d.IsDir() {
			if skipDirs[d.Name()] || depth+1 > maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if depth > maxDepth || !allowed(d.Name()) {
			return nil
		}
		files = append(files, p)
		if len(files) >= maxFiles {
			return fs.SkipAll
		}
		return nil
	})

	return files, err
}

func allowed(name string) bool {
	if allowedNames[name] || lockfiles[name] || strings.HasPrefix(name, "Dockerfile") {
		return true
	}
	return allowedExts[strings.ToLower(path.Ext(name))]
}

// truncateChars cuts s to at most n characters without splitting a rune
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CollectFiles gathers bounded file artifacts from a filesystem. Files are
// read concurrently and returned in lexical path order.
func CollectFiles(ctx context.Context, fsys fs.FS, opts ScanOptions) ([]FileArtifact, error) {
	opts = opts.withDefaults()
	reader := NewFSReader(fsys)

	paths, err := reader.ScanTree(opts.MaxDepth, opts.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tree: %w", err)
	}

	artifacts := make([]FileArtifact, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			artifacts[i] = FileArtifact{Path: p}
			if !lockfiles[path.Base(p)] {
				artifacts[i].Content = reader.Read(p, opts.MaxContentChars)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// CollectDir gathers file artifacts from a directory on disk
func CollectDir(ctx context.Context, root string, opts ScanOptions) ([]FileArtifact, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access path '%s': %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path '%s' is not a directory", root)
	}
	return CollectFiles(ctx, os.DirFS(root), opts)
}
