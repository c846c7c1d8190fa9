package requestset

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nattoujam/tcurl/internal/errdef"
)

// UnmarshalYAML reads a mapping node pairwise so header order survives
// the round trip. Duplicate names are a parse error, not a silent
// last-one-wins.
func (h *Headers) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errdef.New(errdef.CodeParse, "headers must be a mapping")
	}
	headers := make(Headers, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := value.Content[i+1]
		if _, dup := headers.Get(key.Value); dup {
			return errdef.New(errdef.CodeParse, "duplicate header %q", key.Value)
		}
		headers = append(headers, Header{Name: key.Value, Value: val.Value})
	}
	*h = headers
	return nil
}

func (h Headers) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, header := range h {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: header.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: header.Value},
		)
	}
	return node, nil
}

// Parse decodes one request-set file. Missing name falls back to the
// storage id, the method is normalized to upper case, and the result
// is validated before being returned.
func Parse(data []byte, storageID string) (*RequestSet, error) {
	var rs RequestSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "parse request set %q", storageID)
	}
	rs.StorageID = storageID
	if strings.TrimSpace(rs.Name) == "" {
		rs.Name = storageID
	}
	rs.Method = strings.ToUpper(strings.TrimSpace(rs.Method))
	if rs.Method == "" {
		rs.Method = MethodGet
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

func Marshal(rs *RequestSet) ([]byte, error) {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "serialize request set %q", rs.StorageID)
	}
	return data, nil
}
