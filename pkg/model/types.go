package model

// TargetType is the language token a schema type maps to.
type TargetType string

const (
	TypeText    TargetType = "str"
	TypeInteger TargetType = "int"
	TypeFloat   TargetType = "float"
	TypeGeneric TargetType = "type"
	TypeList    TargetType = "list"
	TypeBool    TargetType = "bool"
	TypeNone    TargetType = "None"
)

// typeTable is the fixed schema type to target type mapping.
var typeTable = map[string]TargetType{
	"string":  TypeText,
	"integer": TypeInteger,
	"number":  TypeFloat,
	"object":  TypeGeneric,
	"array":   TypeList,
	"boolean": TypeBool,
	"null":    TypeNone,
}

// SchemaTypes lists the schema type names accepted by the extractor.
func SchemaTypes() []string {
	return []string{"string", "integer", "number", "object", "array", "boolean", "null"}
}

// LookupType maps a schema type name onto its target type.
func LookupType(schemaType string) (TargetType, bool) {
	target, ok := typeTable[schemaType]
	return target, ok
}

// Model is the template context for one schema definition.
type Model struct {
	Name       string          `json:"name"`
	Properties []PropertyModel `json:"properties"`
	Defaults   []Default       `json:"defaults"`
	ImportEnum bool            `json:"import_enum"`
}

// HasEnum reports whether any property declares an enum.
func (m Model) HasEnum() bool {
	for _, prop := range m.Properties {
		if prop.Enum != nil {
			return true
		}
	}
	return false
}

// PropertyModel describes one property of a definition.
type PropertyModel struct {
	Name        string     `json:"name"`
	TargetType  TargetType `json:"target_type"`
	Enum        *Enum      `json:"enum,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Enum is the enum declaration derived from a property's `enum` keyword.
// Values is the space joined form templates expect; ValueList keeps the
// individual values so values containing spaces stay distinguishable.
type Enum struct {
	Name      string   `json:"enum_name"`
	Values    string   `json:"values"`
	ValueList []string `json:"value_list"`
}

// Default pairs a property name with its rendered default literal.
type Default struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
