package openapi

// ExportOptions controls how property metadata is carried into schemas.
type ExportOptions struct {
	// Locale selects the translation used for titles and descriptions of
	// localized text. Empty picks the first locale in sorted order.
	Locale string

	// UIExtensions copies ui and discriminator_ui configuration into the
	// x-ui extension.
	UIExtensions bool

	// DisplayExtensions copies display filters into the x-display
	// extension.
	DisplayExtensions bool

	// OpenAPIVersion is written to documents built by Document.
	OpenAPIVersion string
}

// ExportOption mutates ExportOptions during construction.
type ExportOption func(*ExportOptions)

// WithLocale sets the locale used to resolve localized text.
func WithLocale(locale string) ExportOption {
	return func(opts *ExportOptions) {
		opts.Locale = locale
	}
}

// WithUIExtensions toggles the x-ui extension.
func WithUIExtensions(enabled bool) ExportOption {
	return func(opts *ExportOptions) {
		opts.UIExtensions = enabled
	}
}

// WithDisplayExtensions toggles the x-display extension.
func WithDisplayExtensions(enabled bool) ExportOption {
	return func(opts *ExportOptions) {
		opts.DisplayExtensions = enabled
	}
}

// NewExportOptions applies options over the defaults.
func NewExportOptions(options ...ExportOption) ExportOptions {
	cfg := ExportOptions{
		UIExtensions:      true,
		DisplayExtensions: true,
		OpenAPIVersion:    "3.0.3",
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
