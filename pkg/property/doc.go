// Package property defines the property schema tree that plugins use to
// describe their configurable inputs, and the validator that turns untyped
// JSON-like data into that tree.
//
// A property is one of eight variants selected by its `type` tag: string,
// number (or integer), boolean, encrypted_string, credential_id, array,
// object and discriminated_union. Parse walks the input once, collecting
// every issue it can find into a validation.Errors value; nested failures
// are anchored at the offending node's path. Encode is the inverse of Parse.
//
//	prop, err := property.Parse(map[string]any{
//		"type": "string",
//		"name": "api_url",
//	})
//	if err != nil {
//		var issues validation.Errors
//		errors.As(err, &issues)
//	}
package property
