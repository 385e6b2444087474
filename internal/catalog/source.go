package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	// MaxDocumentSize bounds the catalog body read from any source.
	MaxDocumentSize = 32 << 20
	userAgent       = "cinestream/1.0"
)

// Source produces the raw catalog document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog fetch %s failed: %s", e.URL, e.Status)
}

// HTTPSource fetches the catalog with a single GET.
type HTTPSource struct {
	url  string
	http *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{
		url: url,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSource) String() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		statusErr := &StatusError{URL: s.url, Status: resp.Status, Code: resp.StatusCode}
		if cerr := resp.Body.Close(); cerr != nil {
			return nil, errors.Join(statusErr, cerr)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize))
	if err != nil {
		if cerr := resp.Body.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	if err := resp.Body.Close(); err != nil {
		return nil, err
	}
	return body, nil
}

// FileSource reads the catalog from a file system.
type FileSource struct {
	fsys fs.FS
	name string
}

// NewFileSource reads name from fsys, or from the OS file system when fsys is nil.
func NewFileSource(fsys fs.FS, name string) *FileSource {
	return &FileSource{fsys: fsys, name: name}
}

func (s *FileSource) String() string { return s.name }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		f   io.ReadCloser
		err error
	)
	if s.fsys != nil {
		f, err = s.fsys.Open(s.name)
	} else {
		f, err = os.Open(s.name)
	}
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize))
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return body, nil
}

// NewSource picks an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string, timeout time.Duration) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("catalog source is required")
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(location, timeout), nil
	}
	return NewFileSource(nil, strings.TrimPrefix(location, "file://")), nil
}
