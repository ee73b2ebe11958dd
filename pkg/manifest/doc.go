// Package manifest loads plugin configuration manifests and validates the
// property lists they declare.
//
// A manifest is either a bare JSON/YAML array of properties or an object:
//
//	name: slack
//	version: 1.2.0
//	properties:
//	  - type: credential_id
//	    name: workspace
//	    credential_name: slack
//
// Documents are fetched through a Fetcher; propschema.NewManifestLoader wires
// the default file, fs.FS and HTTP implementation.
package manifest
