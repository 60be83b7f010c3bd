package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"clinote/internal/modules/notes/domain"
	notesout "clinote/internal/modules/notes/port/out"
)

type FileCatalogStore struct {
	fs   afero.Fs
	path string
}

// NewFileCatalogStore reads the catalog from path. An empty path, or a path that
// does not exist, yields the default catalog.
func NewFileCatalogStore(fsys afero.Fs, path string) notesout.CatalogStore {
	return &FileCatalogStore{fs: fsys, path: path}
}

type catalogFile struct {
	Durations []struct {
		Label   string `yaml:"label"`
		Minutes int    `yaml:"minutes"`
	} `yaml:"durations"`
	SessionTypes []string `yaml:"session_types"`
}

func (s *FileCatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	if s.path == "" {
		return domain.DefaultCatalog(), nil
	}
	payload, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultCatalog(), nil
		}
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}

	catalog := domain.DefaultCatalog()
	if len(file.Durations) > 0 {
		catalog.Durations = catalog.Durations[:0:0]
		for _, d := range file.Durations {
			catalog.Durations = append(catalog.Durations, domain.Duration{Label: domain.DurationLabel(d.Label), Minutes: d.Minutes})
		}
	}
	if file.SessionTypes != nil {
		catalog.SessionTypes = file.SessionTypes
	}
	if err := catalog.Validate(); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	return catalog, nil
}
