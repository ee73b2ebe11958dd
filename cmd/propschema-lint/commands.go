package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-propschema"
	"github.com/goliatone/go-propschema/pkg/manifest"
	"github.com/goliatone/go-propschema/pkg/openapi"
	"github.com/goliatone/go-propschema/pkg/property"
	"github.com/goliatone/go-propschema/pkg/validation"
)

// errViolations signals lint findings that were already printed.
var errViolations = errors.New("manifest violations found")

type lintOptions struct {
	scalar      bool
	strict      bool
	rangeChecks bool
	maxDepth    int
	format      string
	timeout     time.Duration
}

type violation struct {
	File    string          `json:"file"`
	Field   string          `json:"field"`
	Kind    validation.Kind `json:"kind"`
	Message string          `json:"message"`
}

type report struct {
	Files      int         `json:"files"`
	Violations []violation `json:"violations"`
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &lintOptions{}
	root := &cobra.Command{
		Use:   "propschema-lint [paths...]",
		Short: "Validate plugin manifest property schemas",
		Long: `Validate the property lists declared by plugin manifests.

Paths may be files, directories (searched for .json, .yaml and .yml files)
or http(s) URLs. Violations are printed as "file: field -> message" and the
command exits with status 1 when any are found.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.scalar, "scalar", false, "only allow scalar property kinds")
	flags.BoolVar(&opts.strict, "strict", false, "report keys a property type does not define")
	flags.BoolVar(&opts.rangeChecks, "range-checks", false, "reject minimums greater than maximums")
	flags.IntVar(&opts.maxDepth, "max-depth", property.DefaultMaxDepth, "maximum property nesting depth")
	flags.DurationVar(&opts.timeout, "http-timeout", 10*time.Second, "timeout for URL sources")
	root.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")

	root.AddCommand(newExportCommand(opts), newWidgetsCommand(opts))
	return root
}

func newExportCommand(opts *lintOptions) *cobra.Command {
	var title, version, locale string
	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Print an OpenAPI document with one schema per manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, err := loadAll(cmd, opts, args)
			if err != nil {
				return err
			}
			components := make(map[string][]property.Property, len(manifests))
			for _, m := range manifests {
				name := componentName(m)
				if _, dup := components[name]; dup {
					return fmt.Errorf("component %q is declared by more than one manifest", name)
				}
				components[name] = m.Properties
			}
			doc, err := openapi.NewExporter(openapi.WithLocale(locale)).Document(cmd.Context(), title, version, components)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "Plugin configuration", "document title")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "document version")
	cmd.Flags().StringVar(&locale, "locale", "", "locale used for localized titles")
	return cmd
}

func newWidgetsCommand(opts *lintOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "widgets [paths...]",
		Short: "Print the UI component resolved for every property",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, err := loadAll(cmd, opts, args)
			if err != nil {
				return err
			}
			validator := opts.validator()
			out := cmd.OutOrStdout()
			for _, m := range manifests {
				property.WalkAll(m.Properties, func(path validation.Path, prop property.Property) bool {
					if component, ok := validator.Component(prop); ok {
						fmt.Fprintf(out, "%s: %s -> %s\n", m.Source, path.Field(), component)
					}
					if union, ok := prop.(*property.DiscriminatedUnion); ok {
						if component, ok := validator.DiscriminatorComponent(union); ok {
							fmt.Fprintf(out, "%s: %s -> %s\n", m.Source, path.Key(union.Discriminator).Field(), component)
						}
					}
					return true
				})
			}
			return nil
		},
	}
}

func runLint(cmd *cobra.Command, opts *lintOptions, args []string) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	sources, err := collectSources(args)
	if err != nil {
		return err
	}

	rep := report{Files: len(sources), Violations: []violation{}}
	for _, src := range sources {
		result, err := propschema.LintManifest(cmd.Context(), src, opts.loaderOptions()...)
		if err != nil {
			return fmt.Errorf("lint %s: %w", src, err)
		}
		for _, issue := range result.Issues {
			location := issue.Field
			if location == "" {
				location = "<root>"
			}
			rep.Violations = append(rep.Violations, violation{
				File:    src.Location,
				Field:   location,
				Kind:    issue.Kind,
				Message: issue.Message,
			})
		}
	}

	sort.SliceStable(rep.Violations, func(i, j int) bool {
		a, b := rep.Violations[i], rep.Violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Message < b.Message
	})

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		for _, v := range rep.Violations {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", v.File, v.Field, v.Message)
		}
	}
	if len(rep.Violations) > 0 {
		return errViolations
	}
	return nil
}

func loadAll(cmd *cobra.Command, opts *lintOptions, args []string) ([]*manifest.Manifest, error) {
	sources, err := collectSources(args)
	if err != nil {
		return nil, err
	}
	loader, err := propschema.NewManifestLoader(opts.loaderOptions()...)
	if err != nil {
		return nil, err
	}
	out := make([]*manifest.Manifest, 0, len(sources))
	for _, src := range sources {
		m, err := loader.Load(cmd.Context(), src)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// collectSources expands args into manifest sources. Directories are walked
// for manifest files in lexical order.
func collectSources(args []string) ([]manifest.Source, error) {
	var sources []manifest.Source
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			src, err := manifest.URLSource(arg)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, manifest.FileSource(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() && isManifestFile(path) {
				sources = append(sources, manifest.FileSource(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(sources) == 0 {
		return nil, errors.New("no manifest files found")
	}
	return sources, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func componentName(m *manifest.Manifest) string {
	if m.Name != "" {
		return m.Name
	}
	base := filepath.Base(m.Source.Location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (o *lintOptions) validator() *property.Validator {
	var options []property.Option
	if o.strict {
		options = append(options, property.WithStrictKeys())
	}
	if o.rangeChecks {
		options = append(options, property.WithRangeChecks())
	}
	if o.maxDepth > 0 {
		options = append(options, property.WithMaxDepth(o.maxDepth))
	}
	return property.NewValidator(options...)
}

func (o *lintOptions) loaderOptions() []manifest.LoaderOption {
	options := []manifest.LoaderOption{manifest.WithValidator(o.validator())}
	if o.scalar {
		options = append(options, manifest.WithScalarProperties())
	}
	if o.timeout > 0 {
		options = append(options, manifest.WithHTTPFallback(o.timeout))
	}
	return options
}
