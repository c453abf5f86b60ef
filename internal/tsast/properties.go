package tsast

// Property is one member of an object literal.
type Property struct {
	Key string
	// KeyNode is the key expression; for shorthand properties it is the
	// same node as Value.
	KeyNode *Node
	// Value is the value expression. Method definitions are their own value.
	Value *Node
	// Node is the whole member: pair, method, or shorthand identifier.
	Node *Node
	// Shorthand marks `{ name }` members, whose value is a binding.
	Shorthand bool
}

// Properties returns the statically keyed members of an object literal in
// source order. When a key repeats only the last occurrence is kept, at
// its own position. Spread elements and computed keys are skipped.
func (t *Tree) Properties(obj *Node) []Property {
	all := t.AllProperties(obj)
	if len(all) == 0 {
		return nil
	}
	last := make(map[string]int, len(all))
	for i, p := range all {
		last[p.Key] = i
	}
	out := make([]Property, 0, len(last))
	for i, p := range all {
		if last[p.Key] == i {
			out = append(out, p)
		}
	}
	return out
}

// AllProperties is Properties without duplicate collapsing.
func (t *Tree) AllProperties(obj *Node) []Property {
	obj = Unwrap(obj)
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	var out []Property
	for _, m := range Elements(obj) {
		switch m.Type() {
		case "pair":
			keyNode := m.ChildByFieldName("key")
			key, ok := t.keyText(keyNode)
			if !ok {
				continue
			}
			out = append(out, Property{Key: key, KeyNode: keyNode, Value: m.ChildByFieldName("value"), Node: m})
		case "method_definition":
			keyNode := m.ChildByFieldName("name")
			key, ok := t.keyText(keyNode)
			if !ok {
				continue
			}
			out = append(out, Property{Key: key, KeyNode: keyNode, Value: m, Node: m})
		case "shorthand_property_identifier":
			out = append(out, Property{Key: t.Text(m), KeyNode: m, Value: m, Node: m, Shorthand: true})
		}
	}
	return out
}

// PropertyMap indexes Properties by key.
func (t *Tree) PropertyMap(obj *Node) map[string]Property {
	props := t.Properties(obj)
	out := make(map[string]Property, len(props))
	for _, p := range props {
		out[p.Key] = p
	}
	return out
}

// HasSpread reports whether an object literal spreads another value into
// itself, which makes its member set unknowable.
func HasSpread(obj *Node) bool {
	for _, m := range Elements(obj) {
		if IsSpread(m) {
			return true
		}
	}
	return false
}

func (t *Tree) keyText(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "property_identifier", "identifier", "number":
		return t.Text(n), true
	case "string":
		return t.StringValue(n)
	case "computed_property_name":
		// ["literal"] keys are static.
		if inner := firstNamed(n); inner != nil {
			return t.StringValue(inner)
		}
	}
	return "", false
}

// MemberKey returns the static key of an object member node.
func (t *Tree) MemberKey(m *Node) (string, bool) {
	if m == nil {
		return "", false
	}
	switch m.Type() {
	case "pair":
		return t.keyText(m.ChildByFieldName("key"))
	case "method_definition":
		return t.keyText(m.ChildByFieldName("name"))
	case "shorthand_property_identifier":
		return t.Text(m), true
	}
	return "", false
}
