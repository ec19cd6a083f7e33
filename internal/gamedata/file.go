package gamedata

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/samdwyer/wordbattle/internal/errors"
)

// LoadCatalogFile loads a catalog override from disk. Files ending in .yaml
// or .yml are parsed as YAML, anything else as JSON. The file uses the same
// layout as the embedded letters.json and must define every letter a-z.
func LoadCatalogFile(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, apperrors.New(apperrors.CodeCatalogInvalid, "catalog path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalogInvalid,
			fmt.Sprintf("read catalog file %s", path), err)
	}
	file, err := decode[LettersFile](path, content)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalogInvalid,
			fmt.Sprintf("decode catalog file %s", path), err)
	}
	return NewCompleteCatalog(file.Letters)
}

// LoadCatalogFrom returns the catalog at path, or the embedded catalog when
// path is empty.
func LoadCatalogFrom(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return LoadCatalog()
	}
	return LoadCatalogFile(path)
}
