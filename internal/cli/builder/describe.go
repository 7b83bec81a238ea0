package builder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/webitel/nfpm-build/internal/cli/shared"
	"github.com/webitel/nfpm-build/internal/logging"
)

// Describe prints package metadata and contents with the platform tools.
// Archlinux archives are listed directly. Failures are logged as warnings.
func (b *Builder) Describe(ctx context.Context, pkg Package) {
	logger := logging.GetLogger("builder")
	logger.Info().Msgf("Generated %s package: %s", strings.ToUpper(pkg.Format), pkg.Filename)

	if err := b.describe(ctx, pkg); err != nil {
		logger.Warn().Msgf("Could not display %s package info: %v", strings.ToUpper(pkg.Format), err)
	}
}

func (b *Builder) describe(ctx context.Context, pkg Package) error {
	logger := logging.GetLogger("builder")
	switch pkg.Format {
	case FormatDeb:
		logger.Info().Msg("Package information:")
		if err := b.Runner.Run(ctx, "dpkg-deb", "--info", pkg.Path); err != nil {
			return err
		}
		logger.Info().Msg("Package contents:")
		return b.Runner.Run(ctx, "dpkg-deb", "--contents", pkg.Path)
	case FormatRPM:
		logger.Info().Msg("Package information:")
		if err := b.Runner.Run(ctx, "rpm", "-qip", pkg.Path); err != nil {
			return err
		}
		logger.Info().Msg("Package contents:")
		return b.Runner.Run(ctx, "rpm", "-qlp", pkg.Path)
	case FormatAPK:
		logger.Info().Msg("Package information:")
		return b.Runner.Run(ctx, "apk", "info", "--contents", pkg.Path)
	case FormatArchLinux:
		logger.Info().Msg("Package contents:")
		return b.listArchive(pkg.Path)
	default:
		return fmt.Errorf("unknown package format %q", pkg.Format)
	}
}

func (b *Builder) listArchive(path string) error {
	encoding := shared.EncodingFor(path)
	if encoding == shared.EncodingNone {
		return fmt.Errorf("unsupported archive %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	names, err := shared.ListArchive(content, encoding)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(b.Out, name)
	}
	return nil
}
