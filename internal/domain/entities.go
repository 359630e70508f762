package domain

// Language is a single entry in the static catalog of languages
// for which aligned embedding models exist.
type Language struct {
	Code string
	Name string
}

// CatalogEntry cross-references a catalog language against local state:
// whether its model has been downloaded to disk, and whether it is
// currently loaded in memory.
type CatalogEntry struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Downloaded bool   `json:"downloaded"`
	Loaded     bool   `json:"loaded"`
}
