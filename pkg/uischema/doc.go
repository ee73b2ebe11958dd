// Package uischema describes the per-widget UI configuration attached to a
// property through its `ui` (or `discriminator_ui`) field. Configurations are
// opaque to the validator beyond a small set of common props; the set of
// components each widget kind accepts comes from a catalog loaded from JSON or
// YAML documents, with a bundled default catalog.
package uischema
