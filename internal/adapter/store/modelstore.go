package store

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.etcd.io/bbolt"

	"github.com/statsmaths/fasttextm/internal/domain"
	"github.com/statsmaths/fasttextm/internal/embed"
)

var (
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")
	keyMeta       = []byte("model_meta")
)

const dbSuffix = ".ftm.db"

// modelMeta is the per-model metadata record kept alongside the vectors.
type modelMeta struct {
	Dim   int `json:"dim"`
	Words int `json:"words"`
}

// ModelStore manages converted embedding models on disk: one bbolt database
// per language under the data directory. Conversion normalizes vocabulary
// keys once so that load never re-parses or re-folds anything.
type ModelStore struct {
	dataDir string
}

// NewModelStore creates the store, making the data directory if needed.
func NewModelStore(dataDir string) (*ModelStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &ModelStore{dataDir: dataDir}, nil
}

// Path returns the on-disk location of the converted model for a code.
func (s *ModelStore) Path(code string) string {
	return filepath.Join(s.dataDir, code+dbSuffix)
}

// IsInstalled reports whether a converted model exists on disk for the code.
func (s *ModelStore) IsInstalled(code string) bool {
	_, err := os.Stat(s.Path(code))
	return err == nil
}

// Installed returns the sorted language codes of all converted models in
// the data directory.
func (s *ModelStore) Installed() ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(s.dataDir, "*"+dbSuffix))
	if err != nil {
		return nil, fmt.Errorf("scan data dir: %w", err)
	}
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		codes = append(codes, strings.TrimSuffix(filepath.Base(m), dbSuffix))
	}
	sort.Strings(codes)
	return codes, nil
}

// Convert parses a fastText text-format artifact (header line "count dim",
// then one "word v1 ... vD" row per line) and writes it as the bbolt model
// database for the code, replacing any previous installation. Words are
// case-folded during conversion; when folding collides, the earlier row
// wins, since the text format orders rows by corpus frequency.
func (s *ModelStore) Convert(code string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read artifact header: %w", err)
		}
		return fmt.Errorf("artifact for %q is empty", code)
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return fmt.Errorf("malformed artifact header %q", sc.Text())
	}
	count, err := strconv.Atoi(header[0])
	if err != nil {
		return fmt.Errorf("malformed word count in header: %w", err)
	}
	dim, err := strconv.Atoi(header[1])
	if err != nil {
		return fmt.Errorf("malformed dimension in header: %w", err)
	}
	if dim <= 0 {
		return fmt.Errorf("artifact dimension must be positive, got %d", dim)
	}

	tmp := s.Path(code) + ".tmp"
	db, err := bbolt.Open(tmp, 0600, nil)
	if err != nil {
		return fmt.Errorf("create model db: %w", err)
	}

	words := 0
	err = db.Update(func(tx *bbolt.Tx) error {
		vectors, err := tx.CreateBucketIfNotExists(bucketVectors)
		if err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}

		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) != dim+1 {
				return fmt.Errorf("row %d: expected %d values, got %d", words+1, dim, len(fields)-1)
			}

			word := embed.Normalize(fields[0])
			if vectors.Get([]byte(word)) != nil {
				continue
			}

			// bbolt keeps a reference to the value until the transaction
			// commits, so every row needs its own buffer.
			buf := make([]byte, 4*dim)
			for i, f := range fields[1:] {
				v, err := strconv.ParseFloat(f, 32)
				if err != nil {
					return fmt.Errorf("row %d (%q): %w", words+1, fields[0], err)
				}
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("row %d (%q): non-finite coordinate", words+1, fields[0])
				}
				binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
			}
			if err := vectors.Put([]byte(word), buf); err != nil {
				return err
			}
			words++
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read artifact: %w", err)
		}
		if words == 0 {
			return fmt.Errorf("artifact for %q has no vocabulary rows", code)
		}
		if count > 0 && words > count {
			return fmt.Errorf("artifact for %q has more rows (%d) than its header declares (%d)", code, words, count)
		}

		data, err := json.Marshal(modelMeta{Dim: dim, Words: words})
		if err != nil {
			return err
		}
		return meta.Put(keyMeta, data)
	})
	if cerr := db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("convert model for %q: %w", code, err)
	}

	if err := os.Rename(tmp, s.Path(code)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("install model for %q: %w", code, err)
	}
	return nil
}

// Load reads a converted model back into an in-memory embedding table.
// Vocabulary enumeration order is the database key order, which is stable
// across loads of the same installation.
func (s *ModelStore) Load(code string) (*embed.Table, error) {
	path := s.Path(code)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no installed model for %q", domain.ErrModelNotFound, code)
		}
		return nil, fmt.Errorf("stat model for %q: %w", code, err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open model db for %q: %w", code, err)
	}
	defer db.Close()

	var table *embed.Table
	err = db.View(func(tx *bbolt.Tx) error {
		metaBucket := tx.Bucket(bucketMeta)
		vectors := tx.Bucket(bucketVectors)
		if metaBucket == nil || vectors == nil {
			return fmt.Errorf("model db for %q is missing buckets", code)
		}

		data := metaBucket.Get(keyMeta)
		if data == nil {
			return fmt.Errorf("model db for %q has no metadata record", code)
		}
		var meta modelMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("decode model metadata: %w", err)
		}

		builder, err := embed.NewTableBuilder(meta.Dim)
		if err != nil {
			return err
		}
		vec := make([]float32, meta.Dim)
		err = vectors.ForEach(func(k, v []byte) error {
			if len(v) != 4*meta.Dim {
				return fmt.Errorf("vector for %q has %d bytes, expected %d", k, len(v), 4*meta.Dim)
			}
			for i := range vec {
				vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(v[4*i:]))
			}
			return builder.Add(string(k), vec)
		})
		if err != nil {
			return err
		}

		table = builder.Build()
		if table.Len() != meta.Words {
			return fmt.Errorf("model db for %q holds %d words, metadata declares %d", code, table.Len(), meta.Words)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load model for %q: %w", code, err)
	}
	return table, nil
}

// Remove deletes the installed model for a code, if present.
func (s *ModelStore) Remove(code string) error {
	err := os.Remove(s.Path(code))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove model for %q: %w", code, err)
	}
	return nil
}
