package installer

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type platform struct {
	os        string
	arch      string
	cacheArch string
}

// platformFor maps Go platform names to the nfpm release asset names and the
// tool cache architecture names.
func platformFor(goos, goarch string) platform {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	p := platform{os: strings.ToUpper(goos[:1]) + goos[1:], arch: goarch, cacheArch: goarch}
	switch goarch {
	case "amd64":
		p.arch, p.cacheArch = "x86_64", "x64"
	case "386":
		p.arch, p.cacheArch = "i386", "x86"
	}
	if goos == "darwin" {
		p.arch = "all"
	}
	return p
}

func expandURL(template, version string, p platform) string {
	if template == "" {
		template = DefaultDownloadURL
	}
	return strings.NewReplacer(
		"{version}", version,
		"{os}", p.os,
		"{arch}", p.arch,
	).Replace(template)
}

func cacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("RUNNER_TOOL_CACHE"); dir != "" {
		return dir, nil
	}
	userCache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCache, "nfpm-build"), nil
}

func toolDir(root, version, arch string) string {
	return filepath.Join(root, ToolName, version, arch)
}

func store(dir string, binary []byte, rec *Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(binaryPath(dir), binary, 0o755); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(binaryPath(dir), 0o755); err != nil {
		return err
	}
	return SaveRecord(dir, rec)
}
