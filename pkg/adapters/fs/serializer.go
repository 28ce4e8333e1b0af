package fs

import (
	"bytes"
	"fmt"
	"io"
	"maps"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/burrow/pkg/core"
)

// Serializer defines how a whole record set is read from and written to a file.
type Serializer interface {
	// Decode reads the record set keyed by "<Class>.<id>".
	Decode(r io.Reader) (map[string]core.Record, error)
	// Encode renders the record set.
	Encode(records map[string]core.Record) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers by file extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles the JSON store layout: one object keyed by
// "<Class>.<id>" whose values are flat records.
type JSONSerializer struct {
	// Strict decodes numbers as json.Number to avoid precision loss.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Decode(r io.Reader) (map[string]core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]core.Record), nil
	}

	var payload map[string]map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return toRecords(payload), nil
}

func (s *JSONSerializer) Encode(records map[string]core.Record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles the same layout as JSONSerializer in YAML.
type YAMLSerializer struct{}

func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Decode(r io.Reader) (map[string]core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return toRecords(payload), nil
}

func (s *YAMLSerializer) Encode(records map[string]core.Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRecords(payload map[string]map[string]any) map[string]core.Record {
	records := make(map[string]core.Record, len(payload))
	for key, fields := range payload {
		rec := make(core.Record, len(fields))
		maps.Copy(rec, fields)
		records[key] = rec
	}
	return records
}
