package model

import (
	"strings"

	"github.com/goliatone/go-popogen/pkg/schema"
)

const (
	keyDefinitions = "definitions"
	keyProperties  = "properties"
	keyType        = "type"
	keyDefault     = "default"
	keyEnum        = "enum"
	keyDescription = "description"

	enumSuffix = "Types"
)

// Extract builds one Model per entry of the document's top level
// `definitions` mapping, in document order.
func Extract(root *schema.Node) ([]Model, error) {
	if !root.IsObject() {
		return nil, &FieldTypeError{Want: "object", Got: kindOf(root)}
	}
	defs, ok := root.Get(keyDefinitions)
	if !ok {
		return nil, &MissingFieldError{Field: keyDefinitions}
	}
	return ExtractDefinitions(defs, keyDefinitions)
}

// ExtractDefinitions runs extraction over an already located definitions
// mapping. path is the mapping's location in the document and only feeds
// error messages.
func ExtractDefinitions(defs *schema.Node, path ...string) ([]Model, error) {
	if !defs.IsObject() {
		return nil, &FieldTypeError{Path: path, Want: "object", Got: kindOf(defs)}
	}

	models := make([]Model, 0, len(defs.Members))
	for _, member := range defs.Members {
		model, err := extractDefinition(member.Key, member.Value, childPath(path, member.Key))
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

func extractDefinition(name string, def *schema.Node, path []string) (Model, error) {
	if !def.IsObject() {
		return Model{}, &FieldTypeError{Path: path, Want: "object", Got: kindOf(def)}
	}
	props, ok := def.Get(keyProperties)
	if !ok {
		return Model{}, &MissingFieldError{Path: path, Field: keyProperties}
	}
	propsPath := childPath(path, keyProperties)
	if !props.IsObject() {
		return Model{}, &FieldTypeError{Path: propsPath, Want: "object", Got: kindOf(props)}
	}

	model := Model{
		Name:       name,
		Properties: make([]PropertyModel, 0, len(props.Members)),
		Defaults:   make([]Default, 0),
	}

	for _, member := range props.Members {
		prop, dflt, err := extractProperty(name, member.Key, member.Value, childPath(propsPath, member.Key))
		if err != nil {
			return Model{}, err
		}
		if dflt != nil {
			model.Defaults = append(model.Defaults, *dflt)
		}
		model.Properties = append(model.Properties, prop)
	}

	model.ImportEnum = model.HasEnum()
	return model, nil
}

func extractProperty(definition, name string, raw *schema.Node, path []string) (PropertyModel, *Default, error) {
	if !raw.IsObject() {
		return PropertyModel{}, nil, &FieldTypeError{Path: path, Want: "object", Got: kindOf(raw)}
	}

	typeNode, ok := raw.Get(keyType)
	if !ok {
		return PropertyModel{}, nil, &MissingFieldError{Path: path, Field: keyType}
	}
	var schemaType string
	if typeNode.Kind == schema.KindString {
		schemaType = typeNode.Text
	}
	target, ok := LookupType(schemaType)
	if !ok {
		return PropertyModel{}, nil, &UnsupportedTypeError{
			Definition: definition,
			Property:   name,
			Type:       bareText(typeNode),
		}
	}

	prop := PropertyModel{
		Name:       name,
		TargetType: target,
	}

	var dflt *Default
	if value, ok := raw.Get(keyDefault); ok {
		dflt = &Default{Name: name, Value: renderDefault(schemaType, value)}
	}

	if enumNode, ok := raw.Get(keyEnum); ok {
		enum, err := buildEnum(name, enumNode, childPath(path, keyEnum))
		if err != nil {
			return PropertyModel{}, nil, err
		}
		prop.Enum = enum
	}

	if desc, ok := raw.Get(keyDescription); ok && desc.Kind == schema.KindString {
		prop.Description = sanitizeDescription(desc.Text)
	}

	return prop, dflt, nil
}

func buildEnum(property string, node *schema.Node, path []string) (*Enum, error) {
	if node.Kind != schema.KindArray {
		return nil, &FieldTypeError{Path: path, Want: "array", Got: kindOf(node)}
	}
	values := make([]string, 0, len(node.Items))
	for _, item := range node.Items {
		values = append(values, bareText(item))
	}
	return &Enum{
		Name:      EnumName(property),
		Values:    strings.Join(values, " "),
		ValueList: values,
	}, nil
}

// EnumName derives the enum class name for a property: the first character
// upper-cased when it is an ASCII letter, followed by "Types".
func EnumName(property string) string {
	if property == "" {
		return enumSuffix
	}
	if first := property[0]; first >= 'a' && first <= 'z' {
		return string(rune(first-('a'-'A'))) + property[1:] + enumSuffix
	}
	return property + enumSuffix
}

func childPath(path []string, segments ...string) []string {
	out := make([]string, 0, len(path)+len(segments))
	out = append(out, path...)
	return append(out, segments...)
}

func kindOf(node *schema.Node) string {
	if node == nil {
		return "nothing"
	}
	return node.Kind.String()
}
