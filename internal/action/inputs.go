// Package action is the GitHub Actions host facility: it reads step inputs,
// writes step outputs and emits workflow commands.
package action

import (
	"cmp"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/webitel/nfpm-build/pkg/nfpmconfig"
)

const (
	DefaultConfigFile = ".nfpm.yaml"
	DefaultFormats    = "deb"
	DefaultTarget     = "dist"
)

// Inputs mirrors the action's declared inputs. The runner exposes each one
// as INPUT_<NAME> with the name upper-cased and hyphens kept.
type Inputs struct {
	Contents        string `envconfig:"INPUT_CONTENTS"`
	ConfigFile      string `envconfig:"INPUT_CONFIG-FILE"`
	Formats         string `envconfig:"INPUT_FORMATS"`
	Target          string `envconfig:"INPUT_TARGET"`
	ModePolicy      string `envconfig:"INPUT_MODE-POLICY"`
	NFPMVersion     string `envconfig:"INPUT_NFPM-VERSION"`
	NFPMChecksum    string `envconfig:"INPUT_NFPM-CHECKSUM"`
	NFPMDownloadURL string `envconfig:"INPUT_NFPM-DOWNLOAD-URL"`
	SkipInstall     string `envconfig:"INPUT_SKIP-INSTALL"`
	GitHubToken     string `envconfig:"INPUT_GITHUB-TOKEN"`

	PackageName        string `envconfig:"INPUT_PACKAGE-NAME"`
	PackageDescription string `envconfig:"INPUT_PACKAGE-DESCRIPTION"`
	Version            string `envconfig:"INPUT_VERSION"`
	Maintainer         string `envconfig:"INPUT_MAINTAINER"`
	Vendor             string `envconfig:"INPUT_VENDOR"`
	Homepage           string `envconfig:"INPUT_HOMEPAGE"`
	License            string `envconfig:"INPUT_LICENSE"`
	Arch               string `envconfig:"INPUT_ARCH"`
	Platform           string `envconfig:"INPUT_PLATFORM"`
	Section            string `envconfig:"INPUT_SECTION"`
	Priority           string `envconfig:"INPUT_PRIORITY"`
	Release            string `envconfig:"INPUT_RELEASE"`
	Prerelease         string `envconfig:"INPUT_PRERELEASE"`
	VersionMetadata    string `envconfig:"INPUT_VERSION-METADATA"`
	Umask              string `envconfig:"INPUT_UMASK"`
	Depends            string `envconfig:"INPUT_DEPENDS"`
	Recommends         string `envconfig:"INPUT_RECOMMENDS"`
	Suggests           string `envconfig:"INPUT_SUGGESTS"`
	Conflicts          string `envconfig:"INPUT_CONFLICTS"`
	Replaces           string `envconfig:"INPUT_REPLACES"`
	Provides           string `envconfig:"INPUT_PROVIDES"`
	Scripts            string `envconfig:"INPUT_SCRIPTS"`
}

// LoadInputs reads inputs from the environment and applies defaults.
func LoadInputs() (*Inputs, error) {
	var in Inputs
	if err := envconfig.Process("", &in); err != nil {
		return nil, err
	}
	NormalizeInputs(&in)
	return &in, nil
}

// NormalizeInputs fills the pipeline defaults. Package defaults are applied
// later by nfpmconfig.Normalize.
func NormalizeInputs(in *Inputs) {
	in.ConfigFile = cmp.Or(strings.TrimSpace(in.ConfigFile), DefaultConfigFile)
	in.Formats = cmp.Or(strings.TrimSpace(in.Formats), DefaultFormats)
	in.Target = cmp.Or(strings.TrimSpace(in.Target), DefaultTarget)
	in.NFPMVersion = strings.TrimSpace(in.NFPMVersion)
}

// Skip reports whether nfpm installation was disabled. Only the YAML 1.2 core
// spellings of true are accepted.
func (in *Inputs) Skip() bool {
	switch strings.TrimSpace(in.SkipInstall) {
	case "true", "True", "TRUE":
		return true
	default:
		return false
	}
}

// Package returns the nfpm package settings.
func (in *Inputs) Package() nfpmconfig.Inputs {
	return nfpmconfig.Inputs{
		Name:            in.PackageName,
		Description:     in.PackageDescription,
		Version:         in.Version,
		Maintainer:      in.Maintainer,
		Vendor:          in.Vendor,
		Homepage:        in.Homepage,
		License:         in.License,
		Arch:            in.Arch,
		Platform:        in.Platform,
		Section:         in.Section,
		Priority:        in.Priority,
		Release:         in.Release,
		Prerelease:      in.Prerelease,
		VersionMetadata: in.VersionMetadata,
		Umask:           in.Umask,
		Depends:         in.Depends,
		Recommends:      in.Recommends,
		Suggests:        in.Suggests,
		Conflicts:       in.Conflicts,
		Replaces:        in.Replaces,
		Provides:        in.Provides,
		Scripts:         in.Scripts,
	}
}
