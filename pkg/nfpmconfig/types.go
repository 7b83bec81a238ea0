package nfpmconfig

import "github.com/webitel/nfpm-build/pkg/contents"

// Inputs is the flat set of package settings taken from action inputs.
type Inputs struct {
	Name            string
	Description     string
	Version         string
	Maintainer      string
	Vendor          string
	Homepage        string
	License         string
	Arch            string
	Platform        string
	Section         string
	Priority        string
	Release         string
	Prerelease      string
	VersionMetadata string
	Umask           string
	Depends         string
	Recommends      string
	Suggests        string
	Conflicts       string
	Replaces        string
	Provides        string
	Scripts         string
}

// Config is the subset of the nfpm configuration schema this tool writes.
type Config struct {
	Name            string                `yaml:"name"`
	Arch            string                `yaml:"arch"`
	Platform        string                `yaml:"platform"`
	Version         string                `yaml:"version"`
	Release         string                `yaml:"release,omitempty"`
	Prerelease      string                `yaml:"prerelease,omitempty"`
	VersionMetadata string                `yaml:"version_metadata,omitempty"`
	Section         string                `yaml:"section"`
	Priority        string                `yaml:"priority"`
	Maintainer      string                `yaml:"maintainer"`
	Description     string                `yaml:"description"`
	Vendor          string                `yaml:"vendor,omitempty"`
	Homepage        string                `yaml:"homepage,omitempty"`
	License         string                `yaml:"license,omitempty"`
	Umask           *contents.Mode        `yaml:"umask,omitempty"`
	Depends         []string              `yaml:"depends,omitempty"`
	Recommends      []string              `yaml:"recommends,omitempty"`
	Suggests        []string              `yaml:"suggests,omitempty"`
	Conflicts       []string              `yaml:"conflicts,omitempty"`
	Replaces        []string              `yaml:"replaces,omitempty"`
	Provides        []string              `yaml:"provides,omitempty"`
	Contents        []contents.Descriptor `yaml:"contents,omitempty"`
	Scripts         *Scripts              `yaml:"scripts,omitempty"`
}

// Scripts lists package lifecycle script paths.
type Scripts struct {
	PreInstall  string `yaml:"preinstall,omitempty"`
	PostInstall string `yaml:"postinstall,omitempty"`
	PreRemove   string `yaml:"preremove,omitempty"`
	PostRemove  string `yaml:"postremove,omitempty"`
}
