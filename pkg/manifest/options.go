package manifest

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-propschema/pkg/property"
)

// DefaultCacheSize is the number of parsed documents a Loader keeps.
const DefaultCacheSize = 128

// LoaderOptions configures fetching, validation and caching.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient fetches URL sources. Nil disables HTTP unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback enables HTTP with a default client.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration

	// CacheSize bounds the parsed-document cache. Zero or less disables it.
	CacheSize int

	// Validator parses property lists. Nil uses property.NewValidator().
	Validator *property.Validator

	// ScalarOnly restricts manifests to scalar property lists.
	ScalarOnly bool
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the fs.FS used for SourceKindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithCacheSize bounds the parsed-document cache.
func WithCacheSize(size int) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.CacheSize = size
	}
}

// WithValidator sets the property validator.
func WithValidator(v *property.Validator) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validator = v
	}
}

// WithScalarProperties only accepts scalar property kinds.
func WithScalarProperties() LoaderOption {
	return func(opts *LoaderOptions) {
		opts.ScalarOnly = true
	}
}

// NewLoaderOptions applies options over the defaults.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{CacheSize: DefaultCacheSize}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
