package port

import "github.com/statsmaths/fasttextm/internal/domain"

// Catalog supplies the static, ordered list of known languages. It is
// independent of what is downloaded or loaded.
type Catalog interface {
	Languages() []domain.Language
}
