package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-propschema/pkg/manifest"
)

const payload = `[{"type":"string","name":"channel"}]`

func TestFetch_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slack.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(manifest.NewLoaderOptions()).Fetch(context.Background(), manifest.FileSource(path))
	if err != nil {
		t.Fatalf("fetch file: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Source().Location != path {
		t.Fatalf("unexpected source %v", doc.Source())
	}

	if _, err := New(manifest.NewLoaderOptions()).Fetch(context.Background(), manifest.FileSource(filepath.Join(dir, "missing.json"))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFetch_FS(t *testing.T) {
	files := fstest.MapFS{"plugins/slack.yaml": {Data: []byte("- type: string\n  name: channel\n")}}
	fetcher := New(manifest.NewLoaderOptions(manifest.WithFileSystem(files)))

	doc, err := fetcher.Fetch(context.Background(), manifest.FSSource("./plugins/slack.yaml"))
	if err != nil {
		t.Fatalf("fetch fs: %v", err)
	}
	if !strings.Contains(string(doc.Raw()), "channel") {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := fetcher.Fetch(context.Background(), manifest.FSSource("../escape.json")); err == nil {
		t.Fatalf("expected invalid path error")
	}
	if _, err := New(manifest.NewLoaderOptions()).Fetch(context.Background(), manifest.FSSource("plugins/slack.yaml")); err == nil {
		t.Fatalf("expected missing filesystem error")
	}
}

func TestFetch_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slack.json":
			_, _ = w.Write([]byte(payload))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	src := manifest.MustURLSource(server.URL + "/slack.json")

	if _, err := New(manifest.NewLoaderOptions()).Fetch(context.Background(), src); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected http disabled error, got %v", err)
	}

	fetcher := New(manifest.NewLoaderOptions(manifest.WithHTTPClient(server.Client())))
	doc, err := fetcher.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("fetch http: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = fetcher.Fetch(context.Background(), manifest.MustURLSource(server.URL+"/missing.json"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(manifest.NewLoaderOptions()).Fetch(ctx, manifest.FileSource("whatever.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFetch_UnknownKind(t *testing.T) {
	_, err := New(manifest.NewLoaderOptions()).Fetch(context.Background(), manifest.Source{Kind: "ftp", Location: "x"})
	if err == nil || !strings.Contains(err.Error(), `unsupported source kind "ftp"`) {
		t.Fatalf("unexpected error %v", err)
	}
}
