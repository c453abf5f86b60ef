package tsast

import "slices"

// Bindings records how imported helper names are bound locally.
type Bindings struct {
	// local name -> imported name
	named map[string]string
}

// Imports collects the top-level import bindings of the tree.
func (t *Tree) Imports() *Bindings {
	b := &Bindings{named: map[string]string{}}
	for _, stmt := range Elements(t.root) {
		if stmt.Type() != "import_statement" {
			continue
		}
		for _, clause := range Elements(stmt) {
			if clause.Type() != "import_clause" {
				continue
			}
			t.collectClause(clause, b)
		}
	}
	return b
}

func (t *Tree) collectClause(clause *Node, b *Bindings) {
	for _, part := range Elements(clause) {
		if part.Type() == "named_imports" {
			for _, spec := range Elements(part) {
				if spec.Type() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := t.Text(name)
				if v, ok := t.StringValue(name); ok {
					imported = v
				}
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = t.Text(alias)
				}
				b.named[local] = imported
			}
		}
	}
}

// Imported returns the imported name bound to local, if local came from a
// named import.
func (b *Bindings) Imported(local string) (string, bool) {
	if b == nil {
		return "", false
	}
	name, ok := b.named[local]
	return name, ok
}

// Callee resolves the name a call expression invokes. A local alias of a
// named import maps back to the imported name when that name is one of
// helpers; otherwise the call matches by its own identifier. Member calls
// resolve to the property, so ns.defineApp(...) yields "defineApp".
func (b *Bindings) Callee(t *Tree, call *Node, helpers ...string) string {
	call = Unwrap(call)
	if call == nil || call.Type() != "call_expression" {
		return ""
	}
	fn := Unwrap(call.ChildByFieldName("function"))
	if fn != nil && fn.Type() == "identifier" {
		if imported, ok := b.Imported(t.Text(fn)); ok && slices.Contains(helpers, imported) {
			return imported
		}
	}
	return t.CalleeName(call)
}

// DefaultExport returns the expression of the module's default export.
// `export default app` where app is a top-level const resolves to the
// const's initializer. Nil when there is no default export expression.
func (t *Tree) DefaultExport() *Node {
	var expr *Node
	for _, stmt := range Elements(t.root) {
		if stmt.Type() != "export_statement" || !t.isDefaultExport(stmt) {
			continue
		}
		if v := stmt.ChildByFieldName("value"); v != nil {
			expr = v
		} else if d := stmt.ChildByFieldName("declaration"); d != nil {
			expr = d
		}
	}
	if expr == nil {
		return nil
	}
	if u := Unwrap(expr); u != nil && u.Type() == "identifier" {
		if init := t.topLevelConst(t.Text(u)); init != nil {
			return init
		}
	}
	return expr
}

func (t *Tree) isDefaultExport(stmt *Node) bool {
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if c := stmt.Child(i); c != nil && c.Type() == "default" {
			return true
		}
	}
	return false
}

func (t *Tree) topLevelConst(name string) *Node {
	for _, stmt := range Elements(t.root) {
		decl := stmt
		if decl.Type() == "export_statement" {
			decl = decl.ChildByFieldName("declaration")
		}
		if decl == nil || (decl.Type() != "lexical_declaration" && decl.Type() != "variable_declaration") {
			continue
		}
		for _, d := range Elements(decl) {
			if d.Type() != "variable_declarator" {
				continue
			}
			if t.Text(d.ChildByFieldName("name")) == name {
				return d.ChildByFieldName("value")
			}
		}
	}
	return nil
}
