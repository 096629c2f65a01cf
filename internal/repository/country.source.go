package repository

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"country-service/internal/domain"
	xerrors "country-service/pkg/xerrors"

	"gopkg.in/yaml.v3"
)

//go:embed data/countries.json
var embeddedCountries []byte

// Source supplies the records the store is built from. It is read once at startup.
type Source interface {
	Load(ctx context.Context) ([]domain.Country, error)
	Name() string
}

// LoadStore reads src and freezes the result into a Store.
func LoadStore(ctx context.Context, src Source) (*Store, error) {
	countries, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	store, err := NewStore(countries)
	if err != nil {
		return nil, fmt.Errorf("build store from %s: %w", src.Name(), err)
	}
	return store, nil
}

type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded dataset" }

func (EmbeddedSource) Load(_ context.Context) ([]domain.Country, error) {
	return decodeJSON(embeddedCountries)
}

// FileSource reads a JSON or YAML dataset. The file holds either a list of
// records or an object keyed by country name.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file " + s.Path }

func (s FileSource) Load(ctx context.Context) ([]domain.Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return decodeYAML(raw)
	case ".json", "":
		return decodeJSON(raw)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(s.Path))
	}
}

func decodeJSON(raw []byte) ([]domain.Country, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []domain.Country
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	// Keyed object: walk tokens so the file order survives.
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: unexpected dataset shape, want a list or an object keyed by name", xerrors.ErrInvalidRecord)
	}
	var out []domain.Country
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var c domain.Country
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		if c, err = keyed(key, c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeYAML(raw []byte) ([]domain.Country, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var list []domain.Country
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		out := make([]domain.Country, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value
			var c domain.Country
			if err := root.Content[i+1].Decode(&c); err != nil {
				return nil, fmt.Errorf("decode %q: %w", key, err)
			}
			c, err := keyed(key, c)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected yaml document kind %d", root.Kind)
}

// keyed reconciles a record with the key it was stored under.
func keyed(key string, c domain.Country) (domain.Country, error) {
	if c.Name == "" {
		c.Name = key
	}
	if c.Name != key {
		return c, fmt.Errorf("%w: key %q holds record named %q", xerrors.ErrInvalidRecord, key, c.Name)
	}
	return c, nil
}
