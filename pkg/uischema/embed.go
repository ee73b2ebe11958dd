package uischema

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed catalog/*
var embeddedCatalog embed.FS

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// EmbeddedFS returns the bundled widget catalog documents. Callers may pass
// this filesystem to LoadFS alongside their own overrides.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		// catalog/ is embedded above.
		panic(err)
	}
	return sub
}

// DefaultCatalog returns the catalog parsed from EmbeddedFS. The result is
// shared and must be treated as read-only.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadFS(EmbeddedFS())
	})
	return defaultCatalog, defaultCatalogErr
}
