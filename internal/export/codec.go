package export

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a Document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// MarshalJSON writes startingState first and the states in document order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, startingStateKey, d.StartingState); err != nil {
		return nil, err
	}
	for _, st := range d.States {
		buf.WriteByte(',')
		if err := writeString(&buf, st.Name); err != nil {
			return nil, err
		}
		buf.WriteString(`:{"` + terminatingKey + `":`)
		if st.Terminating {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		for _, tr := range st.Transitions {
			buf.WriteByte(',')
			if err := writeMember(&buf, tr.Key, tr.Target); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	if err := writeString(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeString(buf, value)
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "encode %q", s)
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON checks the input is JSON and then reads it through the YAML
// node tree, which keeps object keys in order.
func (d *Document) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return errors.New("malformed JSON")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return errors.Wrap(err, "read JSON")
	}
	if len(node.Content) == 0 {
		return errors.New("empty document")
	}
	return d.UnmarshalYAML(node.Content[0])
}

// MarshalYAML builds a mapping node so that key order survives encoding.
func (d Document) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content, strNode(startingStateKey), strNode(d.StartingState))
	for _, st := range d.States {
		state := &yaml.Node{Kind: yaml.MappingNode}
		state.Content = append(state.Content, strNode(terminatingKey), boolNode(st.Terminating))
		for _, tr := range st.Transitions {
			state.Content = append(state.Content, strNode(tr.Key), strNode(tr.Target))
		}
		root.Content = append(root.Content, strNode(st.Name), state)
	}
	return root, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	v := "false"
	if b {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}

// UnmarshalYAML reads a state table mapping in order.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: document must be a mapping", value.Line)
	}
	*d = Document{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == startingStateKey {
			if val.Kind != yaml.ScalarNode {
				return errors.Errorf("line %d: %s must be a state name", val.Line, startingStateKey)
			}
			d.StartingState = val.Value
			continue
		}
		st, err := decodeState(key.Value, val)
		if err != nil {
			return err
		}
		d.States = append(d.States, st)
	}
	return nil
}

func decodeState(name string, value *yaml.Node) (State, error) {
	st := State{Name: name}
	if value.Kind != yaml.MappingNode {
		return st, errors.Errorf("line %d: state %s must be a mapping", value.Line, name)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == terminatingKey {
			if err := val.Decode(&st.Terminating); err != nil {
				return st, errors.Wrapf(err, "state %s: %s", name, terminatingKey)
			}
			continue
		}
		if val.Kind != yaml.ScalarNode {
			return st, errors.Errorf("line %d: state %s: transition %q must name a state", val.Line, name, key.Value)
		}
		st.Transitions = append(st.Transitions, Transition{Key: key.Value, Target: val.Value})
	}
	return st, nil
}

// Encode writes doc to w, indented.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case JSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode JSON")
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encode YAML")
		}
		return enc.Close()
	}
	return errors.Errorf("unknown format %q", format)
}

// Decode reads a document from r.
func Decode(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	doc := &Document{}
	switch format {
	case JSON:
		err = json.Unmarshal(data, doc)
	case YAML:
		err = yaml.Unmarshal(data, doc)
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}
	return doc, nil
}
