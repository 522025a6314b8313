package surveydef

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"surveyflow/internal/model"
)

// Parse picks the decoder from the file extension
func Parse(name string, data []byte) (*model.Survey, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("%s: unsupported definition format", name)
}

// ParseFile reads and parses a definition file from disk
func ParseFile(filename string) (*model.Survey, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := Parse(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadDir loads every definition file in dir
func LoadDir(dir string) ([]*model.Survey, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every *.json, *.yaml and *.yml file directly under dir, in file name order
func LoadFS(fsys fs.FS, dir string) ([]*model.Survey, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	surveys := make([]*model.Survey, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			data, err := fs.ReadFile(fsys, path.Join(dir, name))
			if err != nil {
				return err
			}
			s, err := Parse(name, data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			surveys[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return surveys, nil
}
