// Package openapi exports validated property trees as OpenAPI 3 schemas so
// plugin configuration can be published next to HTTP APIs. kin-openapi types
// are returned directly; Document assembles a components-only document and
// runs kin-openapi's own validation over it.
package openapi
