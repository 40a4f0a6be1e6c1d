package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/shardline/pkg/errors"
	"github.com/matzehuels/shardline/pkg/observability"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer dataset format from %q (want .toml, .yaml, .yml or .json)", filepath.Base(path))
	}
}

// Load reads and validates the dataset at path.
func Load(path string) (*Dataset, error) {
	return LoadContext(context.Background(), path)
}

// LoadContext is Load with a context for dataset hooks.
func LoadContext(ctx context.Context, path string) (ds *Dataset, err error) {
	start := time.Now()
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		observability.Dataset().OnDatasetLoad(ctx, path, format, time.Since(start), err)
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", path)
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode reads a dataset in the given format and validates it.
func Decode(r io.Reader, format string) (*Dataset, error) {
	format = strings.ToLower(format)
	if format == "yml" {
		format = FormatYAML
	}
	if err := errors.ValidateFormat(format, Formats...); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read dataset")
	}

	var ds *Dataset
	switch format {
	case FormatTOML:
		ds, err = decodeTOML(data)
	case FormatYAML:
		ds, err = decodeYAML(data)
	case FormatJSON:
		ds, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func decodeTOML(data []byte) (*Dataset, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse toml")
	}
	for _, key := range md.Undecoded() {
		if len(key) == 1 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "unknown toml key %q", key.String())
		}
	}

	var order []string
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "dependencies" {
			order = append(order, key[1])
		}
	}
	return doc.build(order)
}

func decodeYAML(data []byte) (*Dataset, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse yaml")
	}
	if len(root.Content) == 0 {
		return (&document{}).build(nil)
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml")
	}
	return doc.build(yamlMappingKeys(root.Content[0], "dependencies"))
}

// yamlMappingKeys returns the keys of the mapping stored under field, in
// document order.
func yamlMappingKeys(n *yaml.Node, field string) []string {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != field {
			continue
		}
		m := n.Content[i+1]
		if m.Kind != yaml.MappingNode {
			return nil
		}
		keys := make([]string, 0, len(m.Content)/2)
		for j := 0; j+1 < len(m.Content); j += 2 {
			keys = append(keys, m.Content[j].Value)
		}
		return keys
	}
	return nil
}

func decodeJSON(data []byte) (*Dataset, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse json")
	}

	keys := make([]string, 0, len(doc.Dependencies))
	for k := range doc.Dependencies {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return doc.build(keys)
}
