package tsast

import "strings"

// Kind is the syntactic shape of an expression.
type Kind int

const (
	// KindUnknown marks expressions whose value is only known at runtime.
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
	KindFunction
	KindNull
	KindUndefined
	KindRegex
	KindClass
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindString:    "string",
	KindNumber:    "number",
	KindBool:      "boolean",
	KindArray:     "array",
	KindObject:    "object",
	KindFunction:  "function",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindRegex:     "regex",
	KindClass:     "class",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Article returns the kind with an indefinite article, for messages.
func (k Kind) Article() string {
	switch k {
	case KindArray, KindObject:
		return "an " + k.String()
	case KindNull, KindUndefined:
		return k.String()
	default:
		return "a " + k.String()
	}
}

var functionTypes = map[string]bool{
	"arrow_function":                 true,
	"function":                       true,
	"function_expression":            true,
	"function_declaration":           true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_definition":              true,
}

// Unwrap strips parentheses, type assertions, satisfies clauses, and
// non-null assertions around an expression.
func Unwrap(n *Node) *Node {
	for n != nil {
		switch n.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			inner := firstNamed(n)
			if inner == nil {
				return n
			}
			n = inner
		case "type_assertion":
			// <T>expr: the expression is the last named child.
			inner := lastNamed(n)
			if inner == nil {
				return n
			}
			n = inner
		default:
			return n
		}
	}
	return nil
}

// KindOf classifies an expression after unwrapping it.
func KindOf(n *Node) Kind {
	n = Unwrap(n)
	if n == nil {
		return KindUnknown
	}
	t := n.Type()
	if functionTypes[t] {
		return KindFunction
	}
	switch t {
	case "string", "template_string":
		return KindString
	case "number":
		return KindNumber
	case "unary_expression":
		if IsNumericLiteral(n) {
			return KindNumber
		}
	case "true", "false":
		return KindBool
	case "array":
		return KindArray
	case "object":
		return KindObject
	case "null":
		return KindNull
	case "undefined":
		return KindUndefined
	case "regex":
		return KindRegex
	case "class":
		return KindClass
	}
	return KindUnknown
}

// IsArray reports array literals.
func IsArray(n *Node) bool {
	return KindOf(n) == KindArray
}

// IsObject reports object literals.
func IsObject(n *Node) bool {
	return KindOf(n) == KindObject
}

// IsFunctionLike reports functions, arrows, generators, and methods.
func IsFunctionLike(n *Node) bool {
	return KindOf(n) == KindFunction
}

// IsNumericLiteral reports numbers and signed numbers.
func IsNumericLiteral(n *Node) bool {
	n = Unwrap(n)
	if n == nil {
		return false
	}
	switch n.Type() {
	case "number":
		return true
	case "unary_expression":
		op := n.ChildByFieldName("operator")
		arg := Unwrap(n.ChildByFieldName("argument"))
		if op == nil || arg == nil {
			return false
		}
		return (op.Type() == "-" || op.Type() == "+") && arg.Type() == "number"
	}
	return false
}

// IsAsyncFunction reports function-like nodes carrying the async modifier.
func IsAsyncFunction(n *Node) bool {
	n = Unwrap(n)
	if n == nil || !functionTypes[n.Type()] {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "async" {
			return true
		}
		// Modifiers precede the parameter list.
		if t := c.Type(); t == "formal_parameters" || t == "=>" || t == "statement_block" {
			break
		}
	}
	return false
}

// ReturnsPromise reports a function with an explicit Promise return type,
// or a concise arrow body that builds a promise directly.
func (t *Tree) ReturnsPromise(n *Node) bool {
	n = Unwrap(n)
	if n == nil || !functionTypes[n.Type()] {
		return false
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		text := strings.TrimLeft(strings.TrimSpace(t.Text(rt)), ": ")
		if strings.HasPrefix(text, "Promise<") || strings.HasPrefix(text, "Promise ") || text == "Promise" {
			return true
		}
	}
	if n.Type() == "arrow_function" {
		if body := Unwrap(n.ChildByFieldName("body")); body != nil && body.Type() != "statement_block" {
			return isPromiseExpr(t.Text(body))
		}
	}
	return false
}

func isPromiseExpr(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, "new Promise") || strings.HasPrefix(text, "Promise.")
}

// BoolValue returns the value of a boolean literal.
func BoolValue(n *Node) (value, ok bool) {
	n = Unwrap(n)
	if n == nil {
		return false, false
	}
	switch n.Type() {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// StringValue returns the contents of a string literal or a template string
// without substitutions. Escape sequences are kept as written.
func (t *Tree) StringValue(n *Node) (string, bool) {
	n = Unwrap(n)
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		return trimQuotes(t.Text(n)), true
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c != nil && c.Type() == "template_substitution" {
				return "", false
			}
		}
		return trimQuotes(t.Text(n)), true
	}
	return "", false
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return ""
}

// CalleeName returns the called name of a call expression: the identifier,
// or the property of a member expression. Empty for anything else.
func (t *Tree) CalleeName(call *Node) string {
	call = Unwrap(call)
	if call == nil || call.Type() != "call_expression" {
		return ""
	}
	fn := Unwrap(call.ChildByFieldName("function"))
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return t.Text(fn)
	case "member_expression":
		return t.Text(fn.ChildByFieldName("property"))
	}
	return ""
}

// IsCall reports call expressions.
func IsCall(n *Node) bool {
	n = Unwrap(n)
	return n != nil && n.Type() == "call_expression"
}

// Arguments returns the argument expressions of a call.
func Arguments(call *Node) []*Node {
	call = Unwrap(call)
	if call == nil {
		return nil
	}
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return nil
	}
	return Elements(args)
}

// Elements returns the named children of n, skipping comments.
func Elements(n *Node) []*Node {
	n = Unwrap(n)
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// IsSpread reports spread elements.
func IsSpread(n *Node) bool {
	return n != nil && n.Type() == "spread_element"
}

// Walk visits n and its named descendants depth-first. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := int(cur.NamedChildCount()) - 1; i >= 0; i-- {
			if c := cur.NamedChild(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
}

func firstNamed(n *Node) *Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func lastNamed(n *Node) *Node {
	for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
		if c := n.NamedChild(i); c != nil && c.Type() != "comment" {
			return c
		}
	}
	return nil
}
