package syntax

import "strings"

// PrintScript renders a full ScriptItem list back into surface syntax, one
// declaration per paragraph, in source order. Reparsing its output yields
// an AST equivalent to the one it was printed from (up to whitespace).
func PrintScript(items []ScriptItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(item.String())
	}
	return sb.String()
}

func (n TypedNameNode) String() string { return n.Type + " " + n.Name }

func (n *ViewAssertionNode) String() string { return "{| " + n.Pattern.String() + " |}" }

func (p *AtomicPrim) String() string {
	switch {
	case p.IsSymbol:
		return "%{" + p.Name + "}" + exprArgsString(p.Args)
	case p.Name == "CAS":
		return "CAS" + exprArgsString(p.Args)
	case p.Name == "++" || p.Name == "--":
		return p.Results[0] + p.Name
	case p.Name == "" && len(p.Results) == 1:
		return p.Results[0] + " = " + p.Args[0].String()
	default:
		return p.Name + exprArgsString(p.Args)
	}
}

func (b *AtomicBlock) String() string {
	if len(b.Prims) == 1 {
		return "<" + b.Prims[0].String() + ">"
	}
	var sb strings.Builder
	sb.WriteString("<{ ")
	for _, prim := range b.Prims {
		sb.WriteString(prim.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}>")
	return sb.String()
}

func (s *PrimStep) String() string { return s.Block.String() }

func (s *IfStep) String() string {
	return "if (" + s.Cond.String() + ") " + s.Then.String() + " else " + s.Else.String()
}

func (s *WhileStep) String() string {
	if s.IsDoWhile {
		return "do " + s.Body.String() + " while (" + s.Cond.String() + ")"
	}
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, v := range b.Views {
		sb.WriteString(v.String())
		sb.WriteString("\n")
		if i < len(b.Steps) {
			sb.WriteString(b.Steps[i].String())
			sb.WriteString("\n")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func (d *GlobalDecl) String() string { return "shared " + d.Name.String() + ";" }

func (d *LocalDecl) String() string { return "thread " + d.Name.String() + ";" }

func (d *ViewProtoDecl) String() string {
	var sb strings.Builder
	sb.WriteString("view ")
	if d.IsIter {
		sb.WriteString("iter ")
	}
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(");")
	return sb.String()
}

func (d *ConstraintDecl) String() string {
	return "constraint " + d.Pattern.String() + " -> " + d.Body.String() + ";"
}

func (d *MethodDecl) String() string {
	return "method " + d.Name + "() " + d.Body.String()
}
