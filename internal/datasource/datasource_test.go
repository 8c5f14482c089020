package datasource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnarm/flycatcher-medoo/internal/datasource/httpds"
)

func TestIsURL(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"http://x/a.json":  true,
		"HTTPS://x/a.json": true,
		"/tmp/a.json":      false,
		"file:///a.json":   false,
		"httpdata.json":    false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLocalOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "a.json")
	if err := os.WriteFile(p, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := For(p, nil).Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "[]" {
		t.Fatalf("content = %q", b)
	}

	if _, err := NewLocal(filepath.Join(dir, "nope")).Open(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v, want os.ErrNotExist", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal(p).Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled Open() error = %v", err)
	}
}

func TestRemoteOpen(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"id":1}`)
	}))
	defer srv.Close()

	client := httpds.NewClient(httpds.Config{MaxRetries: -1, InitialBackoff: time.Millisecond})

	rc, err := For(srv.URL+"/rows.json", client).Open(context.Background())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != `{"id":1}` {
		t.Fatalf("body = %q", b)
	}

	_, err = For(srv.URL+"/missing.json", client).Open(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("Open(missing) error = %v, want status 404", err)
	}
}
