// Package installer provisions the nfpm binary into a versioned tool cache
// and puts it on PATH.
package installer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v63/github"

	"github.com/webitel/nfpm-build/internal/cli/shared"
	"github.com/webitel/nfpm-build/internal/cli/toolrun"
	"github.com/webitel/nfpm-build/internal/logging"
)

const (
	ToolName      = "nfpm"
	LatestVersion = "latest"

	// DefaultDownloadURL is expanded with {version}, {os} and {arch}.
	DefaultDownloadURL = "https://github.com/goreleaser/nfpm/releases/download/v{version}/nfpm_{version}_{os}_{arch}.tar.gz"
)

var ErrNotAvailable = errors.New("NFPM is not available. Please install NFPM or provide a version to install")

type Options struct {
	// Version is empty for a pre-installed nfpm, "latest", or a release
	// number with or without the leading v.
	Version     string
	SkipInstall bool
	Checksum    string
	DownloadURL string
	CacheDir    string
	GOOS        string
	GOARCH      string

	HTTPClient *http.Client
	GitHub     *github.Client
	Token      string
	Runner     toolrun.Runner
	AddPath    func(dir string) error
}

// Install makes nfpm available and returns the directory holding the binary.
// The directory is empty when an existing installation is used.
func Install(ctx context.Context, opts Options) (string, error) {
	logger := logging.GetLogger("installer")
	if opts.SkipInstall {
		logger.Info().Msg("Skipping NFPM installation as requested")
		return "", nil
	}
	if opts.Runner == nil {
		opts.Runner = toolrun.NewExec()
	}

	version := strings.TrimPrefix(strings.TrimSpace(opts.Version), "v")
	if version == "" {
		logger.Info().Msg("No NFPM version specified, assuming NFPM is pre-installed")
		return "", verify(ctx, opts.Runner)
	}

	logger.Info().Str("version", version).Msg("Installing NFPM...")
	if version == LatestVersion {
		resolved, err := ResolveLatest(ctx, githubClient(opts))
		if err != nil {
			return "", err
		}
		logger.Info().Str("version", resolved).Msg("Resolved latest NFPM release")
		version = resolved
	}

	cacheRoot, err := cacheDir(opts.CacheDir)
	if err != nil {
		return "", err
	}
	p := platformFor(opts.GOOS, opts.GOARCH)
	dir := toolDir(cacheRoot, version, p.cacheArch)

	if cached(dir) {
		logger.Info().Str("dir", dir).Msg("Found NFPM in tool cache")
	} else {
		url := expandURL(opts.DownloadURL, version, p)
		logger.Info().Str("url", url).Msg("Downloading NFPM")
		if err := fetch(ctx, opts.HTTPClient, url, opts.Checksum, version, dir); err != nil {
			return "", err
		}
		logger.Debug().Str("dir", dir).Msg("Cached NFPM")
	}

	if opts.AddPath != nil {
		if err := opts.AddPath(dir); err != nil {
			return "", fmt.Errorf("failed to add %s to PATH: %w", dir, err)
		}
	}
	if err := verify(ctx, opts.Runner); err != nil {
		return "", err
	}
	return dir, nil
}

// ResolveLatest returns the newest nfpm release number without the leading v.
func ResolveLatest(ctx context.Context, client *github.Client) (string, error) {
	release, _, err := client.Repositories.GetLatestRelease(ctx, "goreleaser", "nfpm")
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest NFPM release: %w", err)
	}
	tag := strings.TrimPrefix(release.GetTagName(), "v")
	if tag == "" {
		return "", errors.New("latest NFPM release has no tag")
	}
	return tag, nil
}

func githubClient(opts Options) *github.Client {
	if opts.GitHub != nil {
		return opts.GitHub
	}
	client := github.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	return client
}

func verify(ctx context.Context, runner toolrun.Runner) error {
	out, err := runner.Output(ctx, ToolName, "--version")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	logger := logging.GetLogger("installer")
	logger.Info().Msg(firstLine(string(out)))
	return nil
}

func fetch(ctx context.Context, client *http.Client, url, checksum, version, dir string) error {
	body, err := download(ctx, client, url)
	if err != nil {
		return err
	}
	if err := shared.VerifyChecksum(body, checksum); err != nil {
		return fmt.Errorf("verify %s: %w", url, err)
	}

	binary := body
	if encoding := shared.EncodingFor(url); encoding != shared.EncodingNone {
		entries, err := shared.ReadArchiveEntries(body, encoding)
		if err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		entry := shared.FindEntry(entries, ToolName)
		if entry == nil {
			return fmt.Errorf("archive %s does not contain %s", url, ToolName)
		}
		binary = entry.Body
	}
	return store(dir, binary, newRecord(version, url, binary, time.Now()))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func binaryPath(dir string) string {
	return filepath.Join(dir, ToolName)
}
