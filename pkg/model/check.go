package model

import "github.com/goliatone/go-popogen/pkg/schema"

// Check applies the extraction rules to every definition and property and
// reports all problems in document order instead of stopping at the first.
// An empty result means ExtractDefinitions succeeds on the same input.
func Check(defs *schema.Node, path ...string) []error {
	if !defs.IsObject() {
		return []error{&FieldTypeError{Path: path, Want: "object", Got: kindOf(defs)}}
	}

	var problems []error
	for _, member := range defs.Members {
		defPath := childPath(path, member.Key)
		if !member.Value.IsObject() {
			problems = append(problems, &FieldTypeError{Path: defPath, Want: "object", Got: kindOf(member.Value)})
			continue
		}
		props, ok := member.Value.Get(keyProperties)
		if !ok {
			problems = append(problems, &MissingFieldError{Path: defPath, Field: keyProperties})
			continue
		}
		propsPath := childPath(defPath, keyProperties)
		if !props.IsObject() {
			problems = append(problems, &FieldTypeError{Path: propsPath, Want: "object", Got: kindOf(props)})
			continue
		}
		for _, prop := range props.Members {
			if _, _, err := extractProperty(member.Key, prop.Key, prop.Value, childPath(propsPath, prop.Key)); err != nil {
				problems = append(problems, err)
			}
		}
	}
	return problems
}
