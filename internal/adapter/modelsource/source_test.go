package modelsource

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/statsmaths/fasttextm/internal/domain"
)

const sampleArtifact = "2 2\ncat 1.0 0.0\ndog 0.0 1.0\n"

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki.en.align.vec" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, sampleArtifact)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/wiki.%s.align.vec")

	r, size, err := src.Fetch(context.Background(), "en")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleArtifact {
		t.Errorf("unexpected artifact body: %q", data)
	}
	if size != int64(len(sampleArtifact)) {
		t.Errorf("expected size %d, got %d", len(sampleArtifact), size)
	}
}

func TestHTTPSource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/wiki.%s.align.vec")

	_, _, err := src.Fetch(context.Background(), "xx")
	if !errors.Is(err, domain.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestHTTPSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/wiki.%s.align.vec")

	_, _, err := src.Fetch(context.Background(), "en")
	if err == nil {
		t.Fatal("expected error for server failure")
	}
	if errors.Is(err, domain.ErrModelNotFound) {
		t.Error("server failure must not be reported as a missing model")
	}
}

func TestDirSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ArtifactName("en"))
	if err := os.WriteFile(path, []byte(sampleArtifact), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir)

	r, size, err := src.Fetch(context.Background(), "en")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if size != int64(len(sampleArtifact)) {
		t.Errorf("expected size %d, got %d", len(sampleArtifact), size)
	}
}

func TestDirSource_NotFound(t *testing.T) {
	src := NewDirSource(t.TempDir())

	_, _, err := src.Fetch(context.Background(), "en")
	if !errors.Is(err, domain.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}
