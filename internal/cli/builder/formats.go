package builder

import (
	"fmt"
	"slices"
	"strings"
)

const (
	FormatDeb       = "deb"
	FormatRPM       = "rpm"
	FormatAPK       = "apk"
	FormatArchLinux = "archlinux"
)

var validFormats = []string{FormatDeb, FormatRPM, FormatAPK, FormatArchLinux}

// extensions lists the artifact suffixes nfpm produces per packager.
var extensions = map[string][]string{
	FormatDeb:       {".deb"},
	FormatRPM:       {".rpm"},
	FormatAPK:       {".apk"},
	FormatArchLinux: {".pkg.tar.zst", ".pkg.tar.xz"},
}

// ParseFormats splits a comma separated packager list. An empty list
// selects deb.
func ParseFormats(text string) ([]string, error) {
	var formats []string
	for _, part := range strings.Split(text, ",") {
		format := strings.ToLower(strings.TrimSpace(part))
		if format == "" {
			continue
		}
		if !slices.Contains(validFormats, format) {
			return nil, fmt.Errorf("invalid package format: %s. Valid formats are: %s", format, strings.Join(validFormats, ", "))
		}
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}
	if len(formats) == 0 {
		return []string{FormatDeb}, nil
	}
	return formats, nil
}

func matchesFormat(name, format string) bool {
	for _, ext := range extensions[format] {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
