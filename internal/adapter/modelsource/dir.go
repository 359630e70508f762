package modelsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/statsmaths/fasttextm/internal/domain"
)

// DirSource serves model artifacts from a local directory, for offline use
// with pre-fetched distributions.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(_ context.Context, code string) (io.ReadCloser, int64, error) {
	path := filepath.Join(s.dir, ArtifactName(code))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: no artifact for %q at %s", domain.ErrModelNotFound, code, path)
		}
		return nil, 0, fmt.Errorf("open artifact for %q: %w", code, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat artifact for %q: %w", code, err)
	}

	return f, info.Size(), nil
}
