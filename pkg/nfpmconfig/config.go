// Package nfpmconfig builds the nfpm configuration file from flat inputs and
// parsed content descriptors.
package nfpmconfig

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/webitel/nfpm-build/pkg/contents"
	"gopkg.in/yaml.v3"
)

const (
	DefaultArch     = "amd64"
	DefaultPlatform = "linux"
	DefaultSection  = "default"
	DefaultPriority = "optional"
	DefaultRelease  = "1"

	separator = "=============================="
)

var scriptKeys = []string{"preinstall", "postinstall", "preremove", "postremove"}

// Normalize fills optional inputs with their defaults.
func Normalize(in *Inputs) {
	in.Arch = cmp.Or(strings.TrimSpace(in.Arch), DefaultArch)
	in.Platform = cmp.Or(strings.TrimSpace(in.Platform), DefaultPlatform)
	in.Section = cmp.Or(strings.TrimSpace(in.Section), DefaultSection)
	in.Priority = cmp.Or(strings.TrimSpace(in.Priority), DefaultPriority)
	in.Release = cmp.Or(strings.TrimSpace(in.Release), DefaultRelease)
}

// Validate reports the first required input that is empty.
func Validate(in *Inputs) error {
	required := []struct {
		name  string
		value string
	}{
		{"package-name", in.Name},
		{"package-description", in.Description},
		{"version", in.Version},
		{"maintainer", in.Maintainer},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("required input %q is missing", r.name)
		}
	}
	return nil
}

// Build normalizes and validates in, then assembles the nfpm configuration.
func Build(in Inputs, files []contents.Descriptor, logger contents.Logger) (*Config, error) {
	Normalize(&in)
	if err := Validate(&in); err != nil {
		return nil, err
	}

	cfg := &Config{
		Name:            in.Name,
		Arch:            in.Arch,
		Platform:        in.Platform,
		Version:         in.Version,
		Prerelease:      strings.TrimSpace(in.Prerelease),
		VersionMetadata: strings.TrimSpace(in.VersionMetadata),
		Section:         in.Section,
		Priority:        in.Priority,
		Maintainer:      in.Maintainer,
		Description:     in.Description,
		Vendor:          strings.TrimSpace(in.Vendor),
		Homepage:        strings.TrimSpace(in.Homepage),
		License:         strings.TrimSpace(in.License),
		Depends:         splitList(in.Depends),
		Recommends:      splitList(in.Recommends),
		Suggests:        splitList(in.Suggests),
		Conflicts:       splitList(in.Conflicts),
		Replaces:        splitList(in.Replaces),
		Provides:        splitList(in.Provides),
	}
	if in.Release != DefaultRelease {
		cfg.Release = in.Release
	}
	if umask := strings.TrimSpace(in.Umask); umask != "" {
		mode, err := contents.ParseMode(umask, contents.ModeOctal)
		if err != nil {
			return nil, fmt.Errorf("invalid umask: %w", err)
		}
		cfg.Umask = mode
	}
	if len(files) > 0 {
		cfg.Contents = files
	}
	if strings.TrimSpace(in.Scripts) != "" {
		scripts, err := parseScripts(in.Scripts, logger)
		if err != nil {
			return nil, err
		}
		cfg.Scripts = scripts
	}
	return cfg, nil
}

// Marshal encodes cfg with two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores cfg at path and echoes the generated file to logger.
func Write(path string, cfg *Config, logger contents.Logger) error {
	b, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("Generated NFPM configuration:")
		logger.Info(separator)
		logger.Info(strings.TrimRight(string(b), "\n"))
		logger.Info(separator)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseScripts(text string, logger contents.Logger) (*Scripts, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scripts: %w", err)
	}
	var root *yaml.Node
	if len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.New("failed to parse scripts: scripts must be a YAML object")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if !slices.Contains(scriptKeys, key) && logger != nil {
			logger.Warning(fmt.Sprintf("Unknown script key: %s. Valid keys are: %s", key, strings.Join(scriptKeys, ", ")))
		}
	}
	var scripts Scripts
	if err := root.Decode(&scripts); err != nil {
		return nil, fmt.Errorf("failed to parse scripts: %w", err)
	}
	return &scripts, nil
}
