package schema

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hexbee-net/errors"
	"gopkg.in/yaml.v3"
)

const errUnknownFormat = errors.Error("unknown configuration format")

// nestedKey is the key the field layout may be nested under, next to
// unrelated application settings.
const nestedKey = "bit_config"

type fieldDocument struct {
	FieldType   string `json:"field_type" yaml:"field_type"`
	FieldLength int    `json:"field_length" yaml:"field_length"`
	FieldName   string `json:"field_name" yaml:"field_name"`
}

// LoadJSON reads a field configuration written in JSON.
func LoadJSON(r io.Reader) (Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read configuration")
	}

	var nested struct {
		BitConfig map[string]fieldDocument `json:"bit_config"`
	}

	if err := json.Unmarshal(data, &nested); err == nil && nested.BitConfig != nil {
		return buildConfig(nested.BitConfig)
	}

	var doc map[string]fieldDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON configuration")
	}

	return buildConfig(doc)
}

// LoadYAML reads a field configuration written in YAML.
func LoadYAML(r io.Reader) (Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read configuration")
	}

	var nested struct {
		BitConfig map[string]fieldDocument `yaml:"bit_config"`
	}

	if err := yaml.Unmarshal(data, &nested); err == nil && nested.BitConfig != nil {
		return buildConfig(nested.BitConfig)
	}

	var doc map[string]fieldDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode YAML configuration")
	}

	return buildConfig(doc)
}

// LoadFile reads a field configuration, choosing the format from the file extension.
func LoadFile(path string) (Config, error) {
	var load func(io.Reader) (Config, error)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, errors.WithFields(
			errors.WithStack(errUnknownFormat),
			errors.Fields{
				"path": path,
			})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open configuration")
	}
	defer f.Close()

	cfg, err := load(f)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{
			"path": path,
		})
	}

	return cfg, nil
}

func buildConfig(doc map[string]fieldDocument) (Config, error) {
	cfg := make(Config, len(doc))

	for key, d := range doc {
		if key == nestedKey {
			continue
		}

		n, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(n) != key {
			return nil, errors.WithFields(
				errors.WithStack(ErrInvalidFieldSpec),
				errors.Fields{
					"key": key,
				})
		}

		kind, err := ParseKind(d.FieldType)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{
				"field": n,
			})
		}

		cfg[n] = FieldSpec{
			Kind:   kind,
			Length: d.FieldLength,
			Name:   d.FieldName,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
