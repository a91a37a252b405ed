// Package hir implements the AST-to-HIR lowering stage: name resolution,
// the recursion well-formedness check, and the named, explicitly-typed
// intermediate term the type checker consumes.
package hir

import (
	"flux/internal/ast"
	"flux/internal/source"
	"flux/internal/types"
)

// Prim enumerates the HIR-level primitive functions. Print is the only
// built-in; it is specialized into four LIR variants during HIR->LIR
// lowering once its argument's type is known.
type Prim int

const (
	Print Prim = iota
)

// Term is a named, located HIR term.
type Term interface {
	isTerm()
	Location() source.Location
}

type Var struct {
	Name string
	Loc  source.Location
}

type Lit struct {
	Value ast.Literal
	Loc   source.Location
}

type Abs struct {
	Param   string
	ParamTy types.Ty
	Body    Term
	Loc     source.Location
}

// App is function application. PrintArgTy is filled in by the type checker
// when Fn is a PrimFn(Print) — it records Arg's inferred type so HIR->LIR
// lowering can pick the right printer specialization. It is nil for every
// other application.
type App struct {
	Fn, Arg    Term
	PrintArgTy *types.Ty
	Loc        source.Location
}

type UnaryOp struct {
	Op      ast.UnOp
	Operand Term
	Loc     source.Location
}

type BinaryOp struct {
	Op          ast.BinOp
	Left, Right Term
	Loc         source.Location
}

type Cond struct {
	C, Then, Else Term
	Loc           source.Location
}

// LetKind distinguishes a non-recursive binding (optionally annotated) from
// a recursive one (annotation mandatory).
type LetKind interface {
	isLetKind()
}

type NonRec struct {
	Annotation types.Ty // nil if absent
}

type Rec struct {
	Annotation types.Ty // never nil
}

func (NonRec) isLetKind() {}
func (Rec) isLetKind()    {}

type Let struct {
	Kind      LetKind
	Name      string
	Rhs, Body Term
	Loc       source.Location
}

type Seq struct {
	First, Second Term
	Loc           source.Location
}

// PrimFn references a primitive; Print is the only one. The printed
// argument's inferred type is recorded on the enclosing App (PrintArgTy),
// not here, and HIR->LIR lowering reads it from there to pick
// PrintInt/PrintBool/PrintUnit/PrintFunc.
type PrimFn struct {
	Prim Prim
	Loc  source.Location
}

func (Var) isTerm()      {}
func (Lit) isTerm()      {}
func (Abs) isTerm()      {}
func (App) isTerm()      {}
func (UnaryOp) isTerm()  {}
func (BinaryOp) isTerm() {}
func (Cond) isTerm()     {}
func (Let) isTerm()      {}
func (Seq) isTerm()      {}
func (PrimFn) isTerm()   {}

func (t Var) Location() source.Location      { return t.Loc }
func (t Lit) Location() source.Location      { return t.Loc }
func (t Abs) Location() source.Location      { return t.Loc }
func (t App) Location() source.Location      { return t.Loc }
func (t UnaryOp) Location() source.Location  { return t.Loc }
func (t BinaryOp) Location() source.Location { return t.Loc }
func (t Cond) Location() source.Location     { return t.Loc }
func (t Let) Location() source.Location      { return t.Loc }
func (t Seq) Location() source.Location      { return t.Loc }
func (t PrimFn) Location() source.Location   { return t.Loc }
