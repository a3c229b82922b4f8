package schema

import "strconv"

// NodeKind identifies the JSON value category held by a Node.
type NodeKind int

const (
	KindNull NodeKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k NodeKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded document value that remembers object key order. Numbers
// keep their source lexeme in Text so defaults render exactly as written.
type Node struct {
	Kind    NodeKind
	Text    string
	Bool    bool
	Items   []*Node
	Members []Member
}

// Get returns the value stored under key when n is an object.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindObject {
		return nil, false
	}
	for _, member := range n.Members {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Has reports whether an object node declares key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys lists object keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(n.Members))
	for _, member := range n.Members {
		keys = append(keys, member.Key)
	}
	return keys
}

// Lookup walks a chain of object keys.
func (n *Node) Lookup(path ...string) (*Node, bool) {
	current := n
	for _, key := range path {
		next, ok := current.Get(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, current != nil
}

// IsObject reports whether n is a non-nil object node.
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == KindObject
}

// set stores value under key. A repeated key keeps its first position and
// takes the latest value.
func (n *Node) set(key string, value *Node) {
	for i := range n.Members {
		if n.Members[i].Key == key {
			n.Members[i].Value = value
			return
		}
	}
	n.Members = append(n.Members, Member{Key: key, Value: value})
}

// ObjectNode builds an object node from ordered members. Intended for tests
// and programmatic documents.
func ObjectNode(members ...Member) *Node {
	node := &Node{Kind: KindObject}
	for _, member := range members {
		node.set(member.Key, member.Value)
	}
	return node
}

// ArrayNode builds an array node.
func ArrayNode(items ...*Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// StringNode builds a string node.
func StringNode(value string) *Node {
	return &Node{Kind: KindString, Text: value}
}

// NumberNode builds a number node from its lexeme.
func NumberNode(lexeme string) *Node {
	return &Node{Kind: KindNumber, Text: lexeme}
}

// BoolNode builds a boolean node.
func BoolNode(value bool) *Node {
	return &Node{Kind: KindBool, Bool: value}
}

// NullNode builds a null node.
func NullNode() *Node {
	return &Node{Kind: KindNull}
}
