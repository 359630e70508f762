package port

import (
	"context"
	"io"
)

// ModelSource supplies the serialized embedding artifact for a language.
// The artifact format and storage location are the source's concern; the
// core only streams bytes out of it.
type ModelSource interface {
	// Fetch opens the artifact for the given language code. It returns
	// the stream, the total size in bytes (-1 if unknown), or
	// domain.ErrModelNotFound if no artifact exists for the code.
	Fetch(ctx context.Context, code string) (io.ReadCloser, int64, error)
}
