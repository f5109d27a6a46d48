// Package style implements the naming-convention analysis pass: a
// CompilationUnit walk that flags class and method identifiers whose
// casing doesn't match the configured convention. Unlike lexing and
// parsing, a naming mismatch is never fatal — every finding is reported
// as a Note.
package style

import (
	"unicode"

	"github.com/corvidlang/javafront/ast"
	"github.com/corvidlang/javafront/diag"
)

// NameStyle is a casing convention a NameType can be checked against.
type NameStyle int

const (
	LowerCamelCase NameStyle = iota
	UpperCamelCase
	SnakeCase
	UpperSnakeCase
	CapsSnakeCase
)

func (s NameStyle) String() string {
	switch s {
	case LowerCamelCase:
		return "lowerCamelCase"
	case UpperCamelCase:
		return "UpperCamelCase"
	case SnakeCase:
		return "snake_case"
	case UpperSnakeCase:
		return "Upper_Snake_Case"
	case CapsSnakeCase:
		return "CAPS_SNAKE_CASE"
	default:
		return "unknown"
	}
}

// NameType is the role a checked identifier plays, since the expected
// style can differ by role (a static method may be held to a different
// convention than an instance one, even though the default config treats
// them alike).
type NameType int

const (
	NameClass NameType = iota
	NameMethod
	NameStaticMethod
)

func (t NameType) String() string {
	switch t {
	case NameClass:
		return "class"
	case NameMethod:
		return "method"
	case NameStaticMethod:
		return "static method"
	default:
		return "name"
	}
}

// Config selects the expected NameStyle per NameType.
type Config struct {
	ClassStyle        NameStyle
	MethodStyle       NameStyle
	StaticMethodStyle NameStyle
}

// DefaultConfig matches ordinary Java convention: classes in
// UpperCamelCase, methods (static or not) in lowerCamelCase.
func DefaultConfig() Config {
	return Config{
		ClassStyle:        UpperCamelCase,
		MethodStyle:       LowerCamelCase,
		StaticMethodStyle: LowerCamelCase,
	}
}

func (c Config) styleFor(ty NameType) NameStyle {
	switch ty {
	case NameClass:
		return c.ClassStyle
	case NameStaticMethod:
		return c.StaticMethodStyle
	default:
		return c.MethodStyle
	}
}

// Checker walks a CompilationUnit's classes and methods, reporting any
// identifier whose casing doesn't match conf through diag.
type Checker struct {
	conf Config
	diag *diag.Collector
}

func NewChecker(conf Config, d *diag.Collector) *Checker {
	return &Checker{conf: conf, diag: d}
}

// Check visits every class and method name in cu.
func (c *Checker) Check(cu *ast.CompilationUnit) {
	for _, item := range cu.Items {
		if item.Kind == ast.ItemClass {
			c.checkClass(item.Class)
		}
	}
}

func (c *Checker) checkClass(class *ast.Class) {
	c.checkIdent(class.Name, NameClass)

	for _, m := range class.Members {
		if m.Kind != ast.MemberMethod {
			continue
		}
		ty := NameMethod
		if m.Method.IsStatic {
			ty = NameStaticMethod
		}
		c.checkIdent(m.Method.Name, ty)
	}
}

func (c *Checker) checkIdent(id ast.Ident, ty NameType) {
	want := c.conf.styleFor(ty)
	if matches(id.Name, want) {
		return
	}
	c.diag.Emitf(diag.Note, id.Span,
		"'%s' is a %s name and should be %s", id.Name, ty, want)
}

// matches reports whether name conforms to style. An empty name trivially
// conforms to any style; there's nothing here for the lexer itself to
// have already rejected.
func matches(name string, style NameStyle) bool {
	if name == "" {
		return true
	}
	switch style {
	case UpperCamelCase:
		return isCamelCase(name, true)
	case LowerCamelCase:
		return isCamelCase(name, false)
	case SnakeCase:
		return isSnakeCase(name, false)
	case UpperSnakeCase:
		return isSnakeCase(name, true)
	case CapsSnakeCase:
		return isCapsSnakeCase(name)
	default:
		return true
	}
}

// isCamelCase checks that name starts with the right case and contains no
// underscores; it does not itself insist on letters-only, since Java
// identifiers may carry digits and `$`/`_` outside the leading position.
func isCamelCase(name string, upperFirst bool) bool {
	first := rune(name[0])
	if first == '_' || first == '$' {
		return false
	}
	if upperFirst && !unicode.IsUpper(first) {
		return false
	}
	if !upperFirst && !unicode.IsLower(first) {
		return false
	}
	for _, r := range name {
		if r == '_' {
			return false
		}
	}
	return true
}

func isSnakeCase(name string, firstUpper bool) bool {
	segs := splitUnderscore(name)
	if len(segs) == 0 {
		return false
	}
	for _, seg := range segs {
		if seg == "" {
			return false
		}
		r := rune(seg[0])
		if firstUpper && !unicode.IsUpper(r) {
			return false
		}
		if !firstUpper && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func isCapsSnakeCase(name string) bool {
	for _, r := range name {
		if r == '_' || unicode.IsDigit(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func splitUnderscore(name string) []string {
	var out []string
	start := 0
	for i, r := range name {
		if r == '_' {
			out = append(out, name[start:i])
			start = i + 1
		}
	}
	out = append(out, name[start:])
	return out
}
