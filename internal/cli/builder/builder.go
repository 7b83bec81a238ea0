// Package builder runs nfpm for each requested packager and reports the
// artifacts it produced.
package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/webitel/nfpm-build/internal/cli/toolrun"
	"github.com/webitel/nfpm-build/internal/logging"
)

// Package is one built artifact.
type Package struct {
	Format   string
	Path     string
	Filename string
}

type Options struct {
	ConfigFile string
	Target     string
	Formats    []string
	// SkipDescribe suppresses the package inspection after each build.
	SkipDescribe bool
}

type Builder struct {
	Runner toolrun.Runner
	Out    io.Writer
}

func New(runner toolrun.Runner, out io.Writer) *Builder {
	if runner == nil {
		runner = toolrun.NewExec()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Builder{Runner: runner, Out: out}
}

// Build packages every format in order and stops at the first failure.
func (b *Builder) Build(ctx context.Context, opts Options) ([]Package, error) {
	logger := logging.GetLogger("builder")
	logger.Info().Msg("Building packages...")

	if err := os.MkdirAll(opts.Target, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	packages := make([]Package, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		logger.Info().Msgf("Building %s package...", strings.ToUpper(format))
		started := time.Now()
		err := b.Runner.Run(ctx, "nfpm", "package",
			"--packager", format,
			"--target", opts.Target,
			"--config", opts.ConfigFile,
		)
		if err != nil {
			return packages, fmt.Errorf("build %s package: %w", format, err)
		}

		pkg, err := FindPackage(opts.Target, format, started)
		if err != nil {
			return packages, err
		}
		packages = append(packages, pkg)
		if !opts.SkipDescribe {
			b.Describe(ctx, pkg)
		}
	}
	return packages, nil
}

// FindPackage returns the newest artifact for format in dir. Files modified
// before since are used only when nothing newer exists.
func FindPackage(dir, format string, since time.Time) (Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Package{}, err
	}

	var (
		found   string
		newest  time.Time
		isFresh bool
	)
	for _, entry := range entries {
		if entry.IsDir() || !matchesFormat(entry.Name(), format) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return Package{}, err
		}
		fresh := !info.ModTime().Before(since)
		if found == "" || (fresh && !isFresh) || (fresh == isFresh && info.ModTime().After(newest)) {
			found, newest, isFresh = entry.Name(), info.ModTime(), fresh
		}
	}
	if found == "" {
		return Package{}, fmt.Errorf("no %s package found in %s", strings.ToUpper(format), dir)
	}
	return Package{Format: format, Path: filepath.Join(dir, found), Filename: found}, nil
}

// Paths returns the artifact paths in build order.
func Paths(packages []Package) []string {
	paths := make([]string, 0, len(packages))
	for _, pkg := range packages {
		paths = append(paths, pkg.Path)
	}
	return paths
}
