package manifest

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a manifest can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies a manifest document: a path on disk, a name inside the
// loader's fs.FS, or an HTTP(S) URL.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource returns a Source for a path on the local filesystem.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// FSSource returns a Source naming an entry of the loader's fs.FS.
func FSSource(name string) Source {
	return Source{Kind: SourceKindFS, Location: strings.TrimPrefix(filepath.ToSlash(name), "./")}
}

// URLSource validates raw and returns a Source for it. Only http and https
// URLs are accepted.
func URLSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, errors.New("manifest: empty URL source")
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return Source{}, fmt.Errorf("manifest: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Source{}, fmt.Errorf("manifest: unsupported URL scheme %q", parsed.Scheme)
	}
	return Source{Kind: SourceKindURL, Location: raw}, nil
}

// MustURLSource is URLSource for static configuration; it panics on error.
func MustURLSource(raw string) Source {
	src, err := URLSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// IsZero reports whether s is the zero Source.
func (s Source) IsZero() bool {
	return s.Kind == "" && s.Location == ""
}

func (s Source) String() string {
	if s.IsZero() {
		return "<none>"
	}
	return s.Location
}
