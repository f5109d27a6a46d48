// Package ast defines the typed, tagged-variant abstract syntax tree the
// parser produces: a compilation unit holding imports and top-level class
// declarations, with method headers and field declarations beneath. There
// is no generic node/kind CST here and no inheritance hierarchy — each
// construct is its own Go struct, per the "no inheritance" design note.
package ast

import "github.com/corvidlang/javafront/source"

// Ident is a name occurrence: its text and the span it was read from.
type Ident struct {
	Name string
	Span source.Span
}

// Visibility is the declared or implied (Package) access level of a class
// or method.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Package
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "package"
	}
}

// Modifier enumerates the keywords the parser can collect before a class
// or member declaration. Not every Modifier is legal at every site; the
// parser enforces that, not this type.
type Modifier int

const (
	ModPublic Modifier = iota
	ModProtected
	ModPrivate
	ModAbstract
	ModStatic
	ModFinal
	ModSynchronized
	ModNative
	ModStrictfp
	ModTransient
	ModVolatile
)

func (m Modifier) String() string {
	switch m {
	case ModPublic:
		return "public"
	case ModProtected:
		return "protected"
	case ModPrivate:
		return "private"
	case ModAbstract:
		return "abstract"
	case ModStatic:
		return "static"
	case ModFinal:
		return "final"
	case ModSynchronized:
		return "synchronized"
	case ModNative:
		return "native"
	case ModStrictfp:
		return "strictfp"
	case ModTransient:
		return "transient"
	default:
		return "volatile"
	}
}

// Name is a possibly-qualified reference: a dotted path of leading
// identifiers plus an optional trailing identifier (absent for a wildcard
// import's "a.b.*").
type Name struct {
	Path []Ident
	Last *Ident
}

// ImportKind discriminates the two Import variants.
type ImportKind int

const (
	ImportSingle ImportKind = iota
	ImportWildcard
)

// Import is a single `import a.b.C;` or wildcard `import a.b.*;` directive.
type Import struct {
	Kind ImportKind
	Name Name
	Span source.Span
}

// FormalParameter is one parameter of a method header: its declared type,
// its name, how many `[]` pairs of array rank it carries (from either
// before or after the name), and whether it was declared `final`.
type FormalParameter struct {
	Type      Ident
	Name      Ident
	ArrayDims int
	IsFinal   bool
}

// Method is a method header plus its (uninterpreted) body, consumed as a
// balanced-brace block by the parser and not represented here.
type Method struct {
	Visibility Visibility
	Name       Ident
	ReturnType Ident
	IsStatic   bool
	IsFinal    bool
	Params     []FormalParameter
	Span       source.Span
}

// Class is a top-level class declaration with its members. The parser
// currently only ever populates Members with Method entries; fields are
// skipped (see §9's "Field declarations are intentionally skipped").
type Class struct {
	Name       Ident
	Visibility Visibility
	Members    []Member
	Span       source.Span
}

// MemberKind discriminates Class.Members entries.
type MemberKind int

const (
	MemberMethod MemberKind = iota
)

// Member wraps one class member. Only MemberMethod is produced today;
// the kind tag exists so fields/nested types can be added later without
// changing Class's shape.
type Member struct {
	Kind   MemberKind
	Method *Method
}

// ItemKind discriminates CompilationUnit.Items entries.
type ItemKind int

const (
	ItemImport ItemKind = iota
	ItemClass
)

// Item is one top-level construct of a compilation unit.
type Item struct {
	Kind   ItemKind
	Import *Import
	Class  *Class
}

// CompilationUnit is the root of a parsed Java source file: an ordered
// sequence of import and class-declaration items.
type CompilationUnit struct {
	Items []Item
}
