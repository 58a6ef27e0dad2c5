// Package exprast defines the Statement/Expr/Query AST produced by
// exprparse and consumed by the interp package (SPEC_FULL.md §3,
// "Statement AST"). It mirrors the shape of robfig/soy's parse tree
// (other_examples/91df43d7_robfig-soy__parse.go.go): small concrete
// node structs tagged by a Kind enum rather than an interface per node
// type, since every node here already carries the same Span field and
// there is no need for per-node behavior (Pos()/String() methods) the
// way text/template's node.go uses them.
package exprast

import "github.com/willabides/yamltmpl/source"

// VarName is a `for`-loop binding identifier.
type VarName string

// StatementKind discriminates the three statement forms a "${{ ... }}"
// scalar segment may hold.
type StatementKind int

const (
	ExprStmt StatementKind = iota
	IfStmt
	ForStmt
)

// Statement is the top-level parse of one "${{ ... }}" expression segment.
type Statement struct {
	Kind StatementKind
	Span source.Span

	// ExprStmt
	Expr *Expr

	// IfStmt
	Condition *Expr

	// ForStmt
	Bindings []VarName
	Iterable *Expr
}

// ExprKind discriminates the Expr sum type.
type ExprKind int

const (
	Str ExprKind = iota
	Int
	Real
	True
	False
	Inline
	Drop
	QueryExpr
	Eq
	Ne
)

// Expr is a value-producing expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Str
	Text string
	// Int
	IntVal int64
	// Real: Text holds the source text.

	// QueryExpr
	Query *Query

	// Eq, Ne
	Left, Right *Expr
}

// QueryKind discriminates the Query sum type.
type QueryKind int

const (
	Root QueryKind = iota
	Var
	Index
)

// Query is a path into a value: the configuration root, a variable, or
// an index step on another Query.
type Query struct {
	Kind QueryKind
	Span source.Span

	// Var
	Name VarName

	// Index
	Object *Query
	Idx    *Expr
}
