package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sourceloc/pkg/errors"
)

// LoadFile reads the entities declared in the descriptor at path.
// Files ending in ".json" are decoded as JSON, everything else as YAML.
func LoadFile(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "entity file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "read %s", path)
	}

	var entities []Entity
	if strings.EqualFold(filepath.Ext(path), ".json") {
		entities, err = parseJSON(data)
	} else {
		entities, err = ParseEntities(data)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "parse %s", path)
	}
	return entities, nil
}

// ParseEntities decodes every YAML document in data as an [Entity].
// Empty documents are skipped. Each entity must declare a kind and a name.
func ParseEntities(data []byte) ([]Entity, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var entities []Entity
	for i := 0; ; i++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "document %d", i)
		}
		if isEmptyDocument(&node) {
			continue
		}

		var e Entity
		if err := node.Decode(&e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "document %d", i)
		}
		if err := e.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "document %d", i)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// ParseEntity decodes a single entity from JSON or YAML.
func ParseEntity(data []byte) (Entity, error) {
	var e Entity
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Entity{}, errors.Wrap(errors.ErrCodeInvalidEntity, err, "decode entity")
	}
	if err := e.Validate(); err != nil {
		return Entity{}, err
	}
	return e, nil
}

// Validate checks that the entity carries the fields needed to reference it.
func (e *Entity) Validate() error {
	if e.Kind == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "entity has no kind")
	}
	if e.Metadata.Name == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "%s entity has no metadata.name", e.Kind)
	}
	return nil
}

func parseJSON(data []byte) ([]Entity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entities []Entity
		if err := json.Unmarshal(trimmed, &entities); err != nil {
			return nil, err
		}
		for i := range entities {
			if err := entities[i].Validate(); err != nil {
				return nil, err
			}
		}
		return entities, nil
	}

	var e Entity
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return []Entity{e}, nil
}

func isEmptyDocument(n *yaml.Node) bool {
	if n.Kind != yaml.DocumentNode {
		return false
	}
	if len(n.Content) == 0 {
		return true
	}
	c := n.Content[0]
	return c.Kind == yaml.ScalarNode && c.ShortTag() == "!!null"
}
