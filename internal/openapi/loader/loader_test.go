package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-schemaflat/internal/openapi/loader"
	pkgopenapi "github.com/goliatone/go-schemaflat/pkg/openapi"
)

const petstore = "openapi: 3.0.3\ncomponents:\n  schemas:\n    Pet:\n      type: object\n"

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "petstore.yaml")
	if err := os.WriteFile(path, []byte(petstore), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(pkgopenapi.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petstore {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoader_FileMissing(t *testing.T) {
	l := loader.New(pkgopenapi.NewLoaderOptions())
	_, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(filepath.Join(t.TempDir(), "nope.json")))
	if err == nil || !strings.Contains(err.Error(), "openapi loader: read") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"specs/petstore.yaml": &fstest.MapFile{Data: []byte(petstore)},
	}
	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/petstore.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Source().Kind() != pkgopenapi.SourceKindFS {
		t.Fatalf("unexpected kind %q", doc.Source().Kind())
	}

	bare := loader.New(pkgopenapi.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), pkgopenapi.SourceFromFS("specs/petstore.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/petstore.yaml":
			_, _ = w.Write([]byte(petstore))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	disabled := loader.New(pkgopenapi.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/petstore.yaml")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(5 * time.Second)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/petstore.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petstore {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing.yaml")); err == nil {
		t.Fatalf("expected status error")
	}

	limited := loader.New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithHTTPClient(server.Client()),
		pkgopenapi.WithMaxBytes(8),
	))
	if _, err := limited.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/petstore.yaml")); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile("petstore.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoader_InlineSourceUnsupported(t *testing.T) {
	l := loader.New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgopenapi.SourceInline("mcp")); err == nil {
		t.Fatalf("inline sources carry their payload and cannot be loaded")
	}
}

func TestLoader_RecordsFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/openapi":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"components":{"schemas":{"Pet":{"type":"object"}}}}`))
		case "/openapi.json":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(petstore))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	l := loader.New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithHTTPClient(server.Client()),
		pkgopenapi.WithFileSystem(fstest.MapFS{
			"specs/petstore.yml": &fstest.MapFile{Data: []byte(petstore)},
			"specs/petstore":     &fstest.MapFile{Data: []byte("  {\"openapi\":\"3.0.3\"}")},
		}),
	))

	cases := []struct {
		name string
		src  pkgopenapi.Source
		want pkgopenapi.Format
	}{
		{name: "content type", src: pkgopenapi.SourceFromURL(server.URL + "/openapi"), want: pkgopenapi.FormatJSON},
		{name: "content type beats extension", src: pkgopenapi.SourceFromURL(server.URL + "/openapi.json"), want: pkgopenapi.FormatYAML},
		{name: "extension", src: pkgopenapi.SourceFromFS("specs/petstore.yml"), want: pkgopenapi.FormatYAML},
		{name: "sniffed", src: pkgopenapi.SourceFromFS("specs/petstore"), want: pkgopenapi.FormatJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := l.Load(context.Background(), tc.src)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if doc.Format() != tc.want {
				t.Fatalf("format = %q, want %q", doc.Format(), tc.want)
			}
		})
	}
}

func TestLoader_SizeCapAppliesToEverySource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "petstore.yaml")
	if err := os.WriteFile(path, []byte(petstore), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	files := fstest.MapFS{"petstore.yaml": &fstest.MapFile{Data: []byte(petstore)}}

	l := loader.New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithFileSystem(files),
		pkgopenapi.WithMaxBytes(8),
	))
	for _, src := range []pkgopenapi.Source{pkgopenapi.SourceFromFile(path), pkgopenapi.SourceFromFS("petstore.yaml")} {
		_, err := l.Load(context.Background(), src)
		if err == nil || !strings.Contains(err.Error(), "exceeds 8 bytes") {
			t.Fatalf("%s: expected size limit error, got %v", src.Kind(), err)
		}
	}

	roomy := loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithMaxBytes(int64(len(petstore)))))
	if _, err := roomy.Load(context.Background(), pkgopenapi.SourceFromFile(path)); err != nil {
		t.Fatalf("payload at the cap should load: %v", err)
	}
}
