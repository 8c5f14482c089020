// Package datasource opens data files named in a job: local paths or
// http(s) URLs.
package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnarm/flycatcher-medoo/internal/datasource/httpds"
)

// Source yields the bytes of one data file.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// IsURL reports whether path names an http(s) resource.
func IsURL(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// For returns a Source for path. URLs are fetched with client, which may be
// nil for the default client.
func For(path string, client *httpds.Client) Source {
	if IsURL(path) {
		if client == nil {
			client = httpds.NewClient(httpds.Config{})
		}
		return &Remote{url: path, client: client}
	}
	return NewLocal(path)
}

// Local reads a file from disk.
type Local struct{ path string }

// NewLocal returns a Local bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open returns the context error without touching the filesystem when ctx
// is already done. Filesystem errors keep errors.Is(err, os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// Remote downloads a URL with GET.
type Remote struct {
	url    string
	client *httpds.Client
}

// Open issues the request; any status other than 2xx is an error.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := r.client.Get(ctx, r.url, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("get %s: status %d", r.url, resp.StatusCode)
	}
	return resp.Body, nil
}
