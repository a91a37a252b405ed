package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// Print renders a Program back into source text. Print(Parse(src)),
// re-parsed, produces a structurally equal Program for every program this
// grammar accepts (modulo source positions).
func Print(p *Program) string {
	var b strings.Builder
	for i, n := range p.Nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(n.StringWithIndent(0))
	}
	b.WriteString("\n")
	return b.String()
}

func (bl *Block) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, n := range bl.Nodes {
		b.WriteString(indent(level+1) + n.StringWithIndent(level+1) + "\n")
	}
	b.WriteString(indent(level) + "}")
	return b.String()
}

func (bb *BranchBlock) StringWithIndent(level int) string {
	if bb.Braced != nil {
		return bb.Braced.StringWithIndent(level)
	}
	return bb.Single.StringWithIndent(level)
}

func (e *Expr) StringWithIndent(level int) string {
	return e.Binary.StringWithIndent(level)
}

func (e *Expr) String() string { return e.StringWithIndent(0) }

func (be *BinaryExpr) StringWithIndent(level int) string {
	s := be.Left.StringWithIndent(level)
	for _, op := range be.Ops {
		s += " " + op.String(level)
	}
	return s
}

func (op *BinOp) String(level int) string {
	return fmt.Sprintf("%s %s", op.Operator, op.Right.StringWithIndent(level))
}

func (u *UnaryExpr) StringWithIndent(level int) string {
	var b strings.Builder
	if u.Operator != nil {
		b.WriteString(*u.Operator)
	}
	b.WriteString(u.Value.StringWithIndent(level))
	return b.String()
}

func (p *PrimaryExpr) StringWithIndent(level int) string {
	switch {
	case p.Let != nil:
		return p.Let.StringWithIndent(level)
	case p.Cond != nil:
		return p.Cond.StringWithIndent(level)
	case p.Fn != nil:
		return p.Fn.StringWithIndent(level)
	case p.Bool != nil:
		return *p.Bool
	case p.Unit:
		return "unit"
	case p.Number != nil:
		return *p.Number
	case p.Call != nil:
		return p.Call.String()
	case p.Parens != nil:
		return "(" + p.Parens.StringWithIndent(level) + ")"
	}
	return ""
}

func (c *CallExpr) String() string {
	if c.Args == nil {
		return c.Name
	}
	var args []string
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

func (l *LetExpr) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString("let " + l.Name)
	if l.Annotation != nil {
		b.WriteString(": " + l.Annotation.String())
	}
	b.WriteString(" = " + l.Rhs.StringWithIndent(level))
	return b.String()
}

func (c *CondExpr) StringWithIndent(level int) string {
	return fmt.Sprintf("if %s then %s else %s",
		c.Cond.StringWithIndent(level), c.Then.StringWithIndent(level), c.Else.StringWithIndent(level))
}

func (f *FnExpr) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString("fn")
	if f.Rec {
		b.WriteString(" rec")
	}
	if f.Name != nil {
		b.WriteString(" " + *f.Name)
	}
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if f.Return != nil {
		b.WriteString(" -> " + f.Return.String())
	}
	b.WriteString(" " + f.Body.StringWithIndent(level))
	return b.String()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type.String())
}

func (t *Type) String() string {
	s := t.Base.String()
	if t.Arrow != nil {
		s += " -> " + t.Arrow.String()
	}
	return s
}

func (b *BaseType) String() string {
	if b.Parens != nil {
		return "(" + b.Parens.String() + ")"
	}
	return b.Name
}
