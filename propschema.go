// Package propschema validates plugin configuration property schemas.
//
// The heavy lifting lives in pkg/property; this package wires the default
// manifest fetcher and exposes the bundled widget catalog.
package propschema

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-propschema/internal/manifest/fetch"
	"github.com/goliatone/go-propschema/pkg/manifest"
	"github.com/goliatone/go-propschema/pkg/uischema"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// NewFetcher constructs the default manifest fetcher (files, fs.FS and
// optionally HTTP) while keeping the concrete type hidden.
func NewFetcher(options ...manifest.LoaderOption) manifest.Fetcher {
	return fetch.New(manifest.NewLoaderOptions(options...))
}

// NewManifestLoader constructs a manifest.Loader backed by the default
// fetcher.
func NewManifestLoader(options ...manifest.LoaderOption) (*manifest.Loader, error) {
	cfg := manifest.NewLoaderOptions(options...)
	return manifest.NewLoader(fetch.New(cfg), cfg)
}

// LintManifest loads src and reports its validation outcome. The error is
// non-nil only when the document could not be fetched; decode and
// validation failures are reported in the Result.
func LintManifest(ctx context.Context, src manifest.Source, options ...manifest.LoaderOption) (validation.Result, error) {
	uncached := append(append([]manifest.LoaderOption(nil), options...), manifest.WithCacheSize(0))
	loader, err := NewManifestLoader(uncached...)
	if err != nil {
		return validation.Result{}, err
	}
	fetcher := NewFetcher(options...)
	doc, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return validation.Result{}, err
	}
	_, err = loader.Parse(doc)
	return validation.ResultFromError(err), nil
}

// WidgetCatalogFS exposes the bundled widget catalog so applications can
// extend it or serve it to form builders.
func WidgetCatalogFS() fs.FS {
	return uischema.EmbeddedFS()
}
