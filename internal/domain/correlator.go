// Package domain implements the scanning and correlation logic behind the
// covermark CLI: walking source trees, extracting mark call sites and
// answering the mark/test coverage queries.
package domain

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"covermark.dev/covermark/internal/adapter"
	m "covermark.dev/covermark/internal/model"
)

// ScanArgs configures one scan over the user's source tree.
type ScanArgs struct {
	// Paths to scan, in the Go tool's pattern style ("./...", "./pkg").
	// Empty means the whole current module ("./...").
	Paths []m.Path

	// Exclude holds regex patterns; files whose path matches any of them
	// are skipped.
	Exclude []string

	// Parallel caps the number of files parsed concurrently. Zero or less
	// means one worker per CPU.
	Parallel int
}

// Correlator builds the bidirectional mark/test index for a source tree.
type Correlator interface {
	Scan(ctx context.Context, args ScanArgs) (m.Index, error)
}

type correlator struct {
	fs     adapter.SourceFSAdapter
	gofile adapter.GoFileAdapter
}

// NewCorrelator constructs a Correlator backed by the provided filesystem
// and Go-parsing adapters.
func NewCorrelator(fs adapter.SourceFSAdapter, gofile adapter.GoFileAdapter) Correlator {
	return &correlator{
		fs:     fs,
		gofile: gofile,
	}
}

// Scan collects the Go files selected by args and extracts every covermark
// call site, parsing files in parallel. Files that fail to parse are logged
// and skipped rather than aborting the whole scan.
func (c *correlator) Scan(ctx context.Context, args ScanArgs) (m.Index, error) {
	excludes, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	files, err := c.collectFiles(args.Paths, excludes)
	if err != nil {
		return nil, err
	}

	slog.Debug("scanning source files", "files", len(files))

	index := m.Index{}
	fset := token.NewFileSet()

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerCount(args.Parallel))

	for _, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			sites, err := c.scanFile(fset, file)
			if err != nil {
				slog.Warn("skipping unparsable file", "path", file, "error", err)
				return nil
			}

			if len(sites) == 0 {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			for _, site := range sites {
				index.Add(site)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return index, nil
}

func (c *correlator) scanFile(fset *token.FileSet, path m.Path) ([]m.CallSite, error) {
	src, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := c.gofile.Parse(fset, string(path), src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return c.gofile.ExtractSites(fset, file, path), nil
}

// collectFiles expands the path patterns into a deduplicated list of Go
// files, honoring the exclude patterns and skipping vendored trees.
func (c *correlator) collectFiles(paths []m.Path, excludes []*regexp.Regexp) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := make(map[m.Path]struct{})

	var files []m.Path

	appendFile := func(path m.Path) {
		if _, dup := seen[path]; dup || excluded(string(path), excludes) {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range paths {
		root, recursive := splitPattern(pattern)

		info, err := c.fs.FileInfo(root)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", root, err)
		}

		if !info.IsDir() {
			if isGoFile(string(root)) {
				appendFile(root)
			}

			continue
		}

		err = c.fs.Walk(root, recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if skippableDir(info.Name(), path == string(root)) {
					return filepath.SkipDir
				}

				return nil
			}

			if isGoFile(path) {
				appendFile(m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	return files, nil
}

// splitPattern peels the Go tool's "/..." suffix off a path pattern.
func splitPattern(pattern m.Path) (m.Path, bool) {
	p := string(pattern)

	if p == "..." {
		return ".", true
	}

	if strings.HasSuffix(p, "/...") {
		root := strings.TrimSuffix(p, "/...")
		if root == "" {
			root = "."
		}

		return m.Path(filepath.Clean(root)), true
	}

	return m.Path(filepath.Clean(p)), false
}

func isGoFile(path string) bool {
	return filepath.Ext(path) == ".go"
}

// skippableDir filters out directories the Go tool itself would not build.
func skippableDir(name string, isRoot bool) bool {
	if isRoot {
		return false
	}

	switch name {
	case "vendor", "testdata", "node_modules":
		return true
	}

	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func workerCount(parallel int) int {
	if parallel <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return parallel
}
