package shared

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

const (
	EncodingNone    = ""
	EncodingTarGzip = "tar+gzip"
	EncodingTarXz   = "tar+xz"
	EncodingTarZstd = "tar+zstd"
)

// ArchiveEntry is one regular file read from a tar stream.
type ArchiveEntry struct {
	Path string
	Body []byte
	Mode os.FileMode
}

// EncodingFor picks the archive encoding from a file name or URL suffix.
func EncodingFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return EncodingTarGzip
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return EncodingTarXz
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return EncodingTarZstd
	default:
		return EncodingNone
	}
}

// ReadArchiveEntries returns the regular files of an archive.
func ReadArchiveEntries(content []byte, encoding string) ([]ArchiveEntry, error) {
	var entries []ArchiveEntry
	err := walkArchive(content, encoding, func(header *tar.Header, r io.Reader) error {
		if !header.FileInfo().Mode().IsRegular() {
			return nil
		}
		entryPath, err := normalizeArchiveEntryName(header.Name)
		if err != nil {
			return err
		}
		body, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		entries = append(entries, ArchiveEntry{
			Path: entryPath,
			Body: body,
			Mode: header.FileInfo().Mode().Perm(),
		})
		return nil
	})
	return entries, err
}

// ListArchive returns every entry name in the archive, directories included.
func ListArchive(content []byte, encoding string) ([]string, error) {
	var names []string
	err := walkArchive(content, encoding, func(header *tar.Header, _ io.Reader) error {
		names = append(names, header.Name)
		return nil
	})
	return names, err
}

// FindEntry returns the first entry whose base name is name.
func FindEntry(entries []ArchiveEntry, name string) *ArchiveEntry {
	for i := range entries {
		if entries[i].Path == name || filepath.Base(entries[i].Path) == name {
			return &entries[i]
		}
	}
	return nil
}

func walkArchive(content []byte, encoding string, fn func(*tar.Header, io.Reader) error) error {
	reader, closer, err := openArchiveReader(content, encoding)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(header, tarReader); err != nil {
			return err
		}
	}
}

type zstdCloser struct{ *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func openArchiveReader(content []byte, encoding string) (io.Reader, io.Closer, error) {
	var baseReader io.Reader = bytes.NewReader(content)
	switch encoding {
	case EncodingTarGzip:
		gzipReader, err := gzip.NewReader(baseReader)
		if err != nil {
			return nil, nil, err
		}
		return gzipReader, gzipReader, nil
	case EncodingTarXz:
		xzReader, err := xz.NewReader(baseReader)
		if err != nil {
			return nil, nil, err
		}
		return xzReader, nil, nil
	case EncodingTarZstd:
		decoder, err := zstd.NewReader(baseReader)
		if err != nil {
			return nil, nil, err
		}
		return decoder, zstdCloser{decoder}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported archive encoding %q", encoding)
	}
}

func normalizeArchiveEntryName(value string) (string, error) {
	cleaned := filepath.Clean(value)
	cleaned = strings.TrimPrefix(cleaned, "./")
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("invalid archive entry path %q", value)
	}
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry path escapes root: %q", value)
	}
	return filepath.ToSlash(cleaned), nil
}
