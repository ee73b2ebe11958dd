package manifest

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-propschema/pkg/property"
)

// Loader fetches manifests, validates their property lists and caches the
// parsed result by content hash. It is safe for concurrent use.
type Loader struct {
	fetcher   Fetcher
	validator *property.Validator
	scalar    bool
	cache     *lru.Cache[string, *Manifest]
}

// NewLoader constructs a Loader around fetcher.
func NewLoader(fetcher Fetcher, options LoaderOptions) (*Loader, error) {
	if fetcher == nil {
		return nil, errors.New("manifest: fetcher is required")
	}
	l := &Loader{
		fetcher:   fetcher,
		validator: options.Validator,
		scalar:    options.ScalarOnly,
	}
	if l.validator == nil {
		l.validator = property.NewValidator()
	}
	if options.CacheSize > 0 {
		cache, err := lru.New[string, *Manifest](options.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("manifest: create cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// Load fetches src and parses it.
func (l *Loader) Load(ctx context.Context, src Source) (*Manifest, error) {
	if src.IsZero() {
		return nil, errors.New("manifest: source is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("manifest: fetch %s: %w", src, err)
	}
	return l.Parse(doc)
}

// Parse decodes and validates doc. Validation failures wrap a
// validation.Errors whose paths are relative to the document root.
func (l *Loader) Parse(doc Document) (*Manifest, error) {
	hash := doc.Hash()
	if l.cache != nil {
		if cached, ok := l.cache.Get(hash); ok {
			return withSource(cached, doc.Source()), nil
		}
	}

	decoded, err := Decode(doc.raw)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, doc.Source())
	}
	list, h, prefix, err := split(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, doc.Source())
	}

	var props []property.Property
	if l.scalar {
		props, err = l.validator.ParseScalarProperties(list)
	} else {
		props, err = l.validator.ParseProperties(list)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", doc.Source(), rebase(err, prefix))
	}

	parsed := &Manifest{
		Name:        h.name,
		Version:     h.version,
		Description: h.description,
		Properties:  props,
		Credentials: property.CredentialNames(props),
		Hash:        hash,
	}
	if l.cache != nil {
		l.cache.Add(hash, parsed)
	}
	return withSource(parsed, doc.Source()), nil
}

// Cached reports how many parsed documents the cache holds.
func (l *Loader) Cached() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

// Purge empties the cache.
func (l *Loader) Purge() {
	if l.cache != nil {
		l.cache.Purge()
	}
}

// withSource returns a shallow copy of m attributed to src. Property trees
// are shared between copies and must be treated as read-only.
func withSource(m *Manifest, src Source) *Manifest {
	out := *m
	out.Source = src
	return &out
}
