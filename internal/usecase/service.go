package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/statsmaths/fasttextm/internal/adapter/store"
	"github.com/statsmaths/fasttextm/internal/domain"
	"github.com/statsmaths/fasttextm/internal/embed"
	"github.com/statsmaths/fasttextm/internal/port"
)

// ProgressFunc reports bytes read out of an expected total while an
// artifact downloads. total is -1 when the source does not know it.
type ProgressFunc func(read, total int64)

// Service is the public surface of the embedding system: it owns the
// registry of loaded tables and coordinates the model store, the remote
// source and the language catalog.
type Service struct {
	registry *embed.Registry
	store    *store.ModelStore
	source   port.ModelSource
	catalog  port.Catalog
}

func NewService(registry *embed.Registry, st *store.ModelStore, source port.ModelSource, catalog port.Catalog) *Service {
	return &Service{
		registry: registry,
		store:    st,
		source:   source,
		catalog:  catalog,
	}
}

// ListLanguages returns the catalog in its fixed order, annotated with
// which models are installed on disk and which are loaded in memory.
func (s *Service) ListLanguages() ([]domain.CatalogEntry, error) {
	installed, err := s.store.Installed()
	if err != nil {
		return nil, fmt.Errorf("list installed models: %w", err)
	}
	onDisk := make(map[string]bool, len(installed))
	for _, code := range installed {
		onDisk[code] = true
	}

	langs := s.catalog.Languages()
	entries := make([]domain.CatalogEntry, len(langs))
	for i, l := range langs {
		entries[i] = domain.CatalogEntry{
			Code:       l.Code,
			Name:       l.Name,
			Downloaded: onDisk[l.Code],
			Loaded:     s.registry.IsLoaded(l.Code),
		}
	}
	return entries, nil
}

// DownloadLanguage fetches the artifact for a code from the model source
// and converts it into the on-disk installed form, replacing any previous
// installation. It does not load the model into memory.
func (s *Service) DownloadLanguage(ctx context.Context, code string, progress ProgressFunc) error {
	r, size, err := s.source.Fetch(ctx, code)
	if err != nil {
		return err
	}
	defer r.Close()

	var body io.Reader = r
	if progress != nil {
		body = &progressReader{r: r, total: size, fn: progress}
	}

	if err := s.store.Convert(code, body); err != nil {
		return err
	}
	return nil
}

// LoadLanguage reads the installed model for a code into memory and
// installs it in the registry, replacing any previously loaded table.
// Loading is idempotent: repeating it against the same installation yields
// identical lookup results.
func (s *Service) LoadLanguage(code string) error {
	table, err := s.store.Load(code)
	if err != nil {
		return err
	}
	s.registry.Install(code, table)
	return nil
}

// Unload drops the in-memory table for a code, if one is loaded. The
// on-disk installation is untouched.
func (s *Service) Unload(code string) bool {
	return s.registry.Unload(code)
}

// Embed resolves each word against the loaded table for the code and
// returns one vector row per word, NaN-filled for out-of-vocabulary words.
func (s *Service) Embed(words []string, code string) ([][]float32, error) {
	table, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	return embed.Resolve(words, table), nil
}

// NearestNeighbors returns, per input word, the k most cosine-similar words
// from the target language's table, or a nil row for words missing from the
// source vocabulary. Source and target may name the same language.
func (s *Service) NearestNeighbors(words []string, srcCode, dstCode string, k int) ([][]string, error) {
	src, err := s.registry.Get(srcCode)
	if err != nil {
		return nil, err
	}
	dst, err := s.registry.Get(dstCode)
	if err != nil {
		return nil, err
	}
	return embed.Nearest(words, src, dst, k)
}

type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.read, p.total)
	}
	return n, err
}
