package contents

// Kind is the nfpm content type of one descriptor.
type Kind string

const (
	KindFile    Kind = "file"
	KindDir     Kind = "dir"
	KindConfig  Kind = "config"
	KindSymlink Kind = "symlink"
)

// Descriptor is one entry placed into a built package.
type Descriptor struct {
	Source      string    `yaml:"src"`
	Destination string    `yaml:"dst"`
	Kind        Kind      `yaml:"type"`
	FileInfo    *FileInfo `yaml:"file_info,omitempty"`
}

// FileInfo holds ownership and permission overrides. A nil *FileInfo on a
// descriptor means none were supplied.
type FileInfo struct {
	Mode  *Mode  `yaml:"mode,omitempty"`
	Owner string `yaml:"owner,omitempty"`
	Group string `yaml:"group,omitempty"`
}

// Logger receives the informational and warning lines emitted while parsing.
type Logger interface {
	Info(msg string)
	Warning(msg string)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}

func (f *FileInfo) empty() bool {
	return f.Mode == nil && f.Owner == "" && f.Group == ""
}
