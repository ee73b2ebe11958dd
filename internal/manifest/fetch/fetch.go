package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-propschema/pkg/manifest"
)

// Fetcher reads manifests from disk, an fs.FS or HTTP.
type Fetcher struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

var _ manifest.Fetcher = (*Fetcher)(nil)

// New constructs a Fetcher from resolved loader options. HTTP is enabled when
// a client is supplied or AllowHTTPFallback is set.
func New(options manifest.LoaderOptions) *Fetcher {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Fetcher{fs: options.FileSystem, http: client, timeout: timeout}
}

// Fetch reads src and wraps the payload in a manifest.Document.
func (f *Fetcher) Fetch(ctx context.Context, src manifest.Source) (manifest.Document, error) {
	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case manifest.SourceKindFile:
		data, err = readFile(ctx, src.Location)
	case manifest.SourceKindFS:
		data, err = readFS(ctx, f.fs, src.Location)
	case manifest.SourceKindURL:
		if f.http == nil {
			return manifest.Document{}, ErrHTTPDisabled
		}
		data, err = readHTTP(ctx, f.http, src.Location, f.timeout)
	default:
		err = fmt.Errorf("manifest fetch: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return manifest.Document{}, err
	}
	return manifest.NewDocument(src, data)
}
