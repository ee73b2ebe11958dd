package property_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-propschema/pkg/property"
	"github.com/goliatone/go-propschema/pkg/testsupport"
)

func TestParseProperties_InvalidPluginGolden(t *testing.T) {
	raw := testsupport.MustLoadJSON(t, filepath.Join("testdata", "invalid_plugin.json"))

	_, err := property.ParseProperties(raw)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	testsupport.AssertResultGolden(t, filepath.Join("testdata", "invalid_plugin.result.json"), err)
}
