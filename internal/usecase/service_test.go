package usecase

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/statsmaths/fasttextm/internal/adapter/catalog"
	"github.com/statsmaths/fasttextm/internal/adapter/store"
	"github.com/statsmaths/fasttextm/internal/domain"
	"github.com/statsmaths/fasttextm/internal/embed"
)

// fakeSource serves artifacts from a map, standing in for the remote
// distribution.
type fakeSource struct {
	artifacts map[string]string
}

func (f *fakeSource) Fetch(_ context.Context, code string) (io.ReadCloser, int64, error) {
	body, ok := f.artifacts[code]
	if !ok {
		return nil, 0, domain.ErrModelNotFound
	}
	return io.NopCloser(strings.NewReader(body)), int64(len(body)), nil
}

const (
	enArtifact = `3 3
cat 1.0 0.0 0.0
dog 0.0 1.0 0.0
fish 0.0 0.0 1.0
`
	frArtifact = `3 3
chat 0.9 0.1 0.0
chien 0.1 0.9 0.0
poisson 0.0 0.1 0.9
`
)

func newService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewModelStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := &fakeSource{artifacts: map[string]string{
		"en": enArtifact,
		"fr": frArtifact,
	}}
	return NewService(embed.NewRegistry(), st, src, catalog.NewStatic())
}

func download(t *testing.T, s *Service, codes ...string) {
	t.Helper()
	for _, code := range codes {
		if err := s.DownloadLanguage(context.Background(), code, nil); err != nil {
			t.Fatalf("download %s: %v", code, err)
		}
	}
}

func TestEmbed_RoundTripCaseInsensitive(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	for _, input := range []string{"cat", "Cat", "CAT"} {
		rows, err := s.Embed([]string{input}, "en")
		if err != nil {
			t.Fatal(err)
		}
		if rows[0][0] != 1.0 || rows[0][1] != 0.0 || rows[0][2] != 0.0 {
			t.Errorf("input %q: expected stored vector, got %v", input, rows[0])
		}
	}
}

func TestEmbed_MissingWordsAreNaNRows(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Embed([]string{"zzz", "cat", "zzz"}, "en")
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 2} {
		for j, v := range rows[i] {
			if !math.IsNaN(float64(v)) {
				t.Errorf("row %d coordinate %d: expected NaN, got %f", i, j, v)
			}
		}
	}
	if rows[1][0] != 1.0 {
		t.Errorf("expected cat vector in row 1, got %v", rows[1])
	}
}

func TestEmbed_NotLoaded(t *testing.T) {
	s := newService(t)

	_, err := s.Embed([]string{"cat"}, "en")
	if !errors.Is(err, domain.ErrLanguageNotLoaded) {
		t.Errorf("expected ErrLanguageNotLoaded, got %v", err)
	}
}

func TestNearestNeighbors_CrossLingual(t *testing.T) {
	s := newService(t)
	download(t, s, "en", "fr")
	for _, code := range []string{"en", "fr"} {
		if err := s.LoadLanguage(code); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := s.NearestNeighbors([]string{"cat", "zzz"}, "en", "fr", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0]) != 1 || rows[0][0] != "chat" {
		t.Errorf("expected [chat], got %v", rows[0])
	}
	if rows[1] != nil {
		t.Errorf("expected nil row for unresolved word, got %v", rows[1])
	}
}

func TestNearestNeighbors_KTooLarge(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	_, err := s.NearestNeighbors([]string{"cat"}, "en", "en", 4)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNearestNeighbors_TargetNotLoaded(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	_, err := s.NearestNeighbors([]string{"cat"}, "en", "fr", 1)
	if !errors.Is(err, domain.ErrLanguageNotLoaded) {
		t.Errorf("expected ErrLanguageNotLoaded, got %v", err)
	}
}

func TestLoadLanguage_Idempotent(t *testing.T) {
	s := newService(t)
	download(t, s, "en")

	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}
	first, err := s.Embed([]string{"cat", "dog"}, "en")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}
	second, err := s.Embed([]string{"cat", "dog"}, "en")
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("row %d differs after reload: %v vs %v", i, first[i], second[i])
			}
		}
	}
}

func TestLoadLanguage_NotDownloaded(t *testing.T) {
	s := newService(t)

	err := s.LoadLanguage("en")
	if !errors.Is(err, domain.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestDownloadLanguage_UnknownCode(t *testing.T) {
	s := newService(t)

	err := s.DownloadLanguage(context.Background(), "xx", nil)
	if !errors.Is(err, domain.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestDownloadLanguage_ReportsProgress(t *testing.T) {
	s := newService(t)

	var last, total int64
	err := s.DownloadLanguage(context.Background(), "en", func(read, tot int64) {
		last = read
		total = tot
	})
	if err != nil {
		t.Fatal(err)
	}
	if last != int64(len(enArtifact)) {
		t.Errorf("expected %d bytes reported, got %d", len(enArtifact), last)
	}
	if total != int64(len(enArtifact)) {
		t.Errorf("expected total %d, got %d", len(enArtifact), total)
	}
}

func TestListLanguages(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	entries, err := s.ListLanguages()
	if err != nil {
		t.Fatal(err)
	}
	byCode := make(map[string]domain.CatalogEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}

	en, ok := byCode["en"]
	if !ok {
		t.Fatal("expected en in catalog")
	}
	if !en.Downloaded || !en.Loaded {
		t.Errorf("expected en downloaded and loaded, got %+v", en)
	}

	fr, ok := byCode["fr"]
	if !ok {
		t.Fatal("expected fr in catalog")
	}
	if fr.Downloaded || fr.Loaded {
		t.Errorf("expected fr neither downloaded nor loaded, got %+v", fr)
	}
}

func TestUnload(t *testing.T) {
	s := newService(t)
	download(t, s, "en")
	if err := s.LoadLanguage("en"); err != nil {
		t.Fatal(err)
	}

	if !s.Unload("en") {
		t.Error("expected unload to report true for a loaded language")
	}
	if _, err := s.Embed([]string{"cat"}, "en"); !errors.Is(err, domain.ErrLanguageNotLoaded) {
		t.Errorf("expected ErrLanguageNotLoaded after unload, got %v", err)
	}
}
