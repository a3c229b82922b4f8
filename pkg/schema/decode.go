package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// maxDepth bounds nesting so hostile documents (or YAML alias loops) cannot
// exhaust the stack.
const maxDepth = 512

// Decode turns the document payload into an ordered Node tree using the
// decoder matching the document format.
func Decode(doc Document) (*Node, error) {
	raw := doc.Raw()
	switch doc.Format() {
	case FormatYAML:
		return DecodeYAML(raw)
	default:
		return DecodeJSON(raw)
	}
}

// DecodeJSON decodes a JSON payload token by token so object key order and
// number lexemes survive.
func DecodeJSON(raw []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("schema: decode json: document is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	node, err := decodeJSONValue(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("schema: decode json: %w", err)
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("schema: decode json: %w", err)
		}
		return nil, fmt.Errorf("schema: decode json: unexpected trailing token %v", tok)
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder, depth int) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return decodeJSONToken(dec, tok, depth)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec, depth)
		case '[':
			return decodeJSONArray(dec, depth)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		return StringNode(v), nil
	case json.Number:
		return NumberNode(string(v)), nil
	case float64:
		return NumberNode(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return BoolNode(v), nil
	case nil:
		return NullNode(), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeJSONObject(dec *json.Decoder, depth int) (*Node, error) {
	node := &Node{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		value, err := decodeJSONValue(dec, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		node.set(key, value)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return node, nil
}

func decodeJSONArray(dec *json.Decoder, depth int) (*Node, error) {
	node := &Node{Kind: KindArray}
	for dec.More() {
		item, err := decodeJSONValue(dec, depth+1)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", len(node.Items), err)
		}
		node.Items = append(node.Items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return node, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

// DecodeYAML decodes a YAML payload through yaml.v3 nodes, keeping mapping
// order and resolving aliases.
func DecodeYAML(raw []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New("schema: decode yaml: document is empty")
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, errors.New("schema: decode yaml: document is empty")
	}

	node, err := convertYAML(root, 0)
	if err != nil {
		return nil, fmt.Errorf("schema: decode yaml: %w", err)
	}
	return node, nil
}

func convertYAML(n *yaml.Node, depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("nesting exceeds %d levels", maxDepth)
	}

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		return convertYAML(n.Alias, depth+1)
	case yaml.MappingNode:
		node := &Node{Kind: KindObject}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			value, err := convertYAML(n.Content[i+1], depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key.Value, err)
			}
			node.set(key.Value, value)
		}
		return node, nil
	case yaml.SequenceNode:
		node := &Node{Kind: KindArray, Items: make([]*Node, 0, len(n.Content))}
		for i, child := range n.Content {
			item, err := convertYAML(child, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			node.Items = append(node.Items, item)
		}
		return node, nil
	case yaml.ScalarNode:
		return convertYAMLScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func convertYAMLScalar(n *yaml.Node) (*Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return NullNode(), nil
	case "!!bool":
		var value bool
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return BoolNode(value), nil
	case "!!int", "!!float":
		return NumberNode(n.Value), nil
	default:
		return StringNode(n.Value), nil
	}
}
