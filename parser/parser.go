// Package parser implements the recursive-descent parser over the real
// token stream: compilation units, import directives, class declarations,
// method headers, and a rough field-declaration skip. Every syntax error
// is fatal for the file — there is no token-level recovery beyond the
// specific local skips (balanced-brace bodies, field declarations to the
// next semicolon) the spec calls out explicitly.
package parser

import (
	"sort"

	"github.com/corvidlang/javafront/ast"
	"github.com/corvidlang/javafront/diag"
	"github.com/corvidlang/javafront/lexer"
	"github.com/corvidlang/javafront/source"
	"github.com/corvidlang/javafront/token"
)

// fatal is the parser's internal control-flow signal: a syntax error was
// already recorded in the diagnostics collector and the current parse
// attempt (file, class, or method) must unwind with no partial AST.
type fatal struct{}

// Parser drives a lexer.Lexer through a three-token window, exactly the
// (last, current, peek) shape the tokenizer itself uses, consuming only
// real tokens (trivia is filtered by NextReal before it ever reaches the
// window).
type Parser struct {
	lex  *lexer.Lexer
	diag *diag.Collector

	last, curr, peek token.Token
}

func newParser(lex *lexer.Lexer, d *diag.Collector) *Parser {
	p := &Parser{lex: lex, diag: d}
	p.curr = lex.NextReal()
	p.peek = lex.NextReal()
	return p
}

// bump shifts the token window forward by one.
func (p *Parser) bump() {
	p.last = p.curr
	p.curr = p.peek
	p.peek = p.lex.NextReal()
}

func (p *Parser) atEOF() bool {
	return p.curr.Kind == token.EOF
}

// spanFrom returns the span between the start of startTok and the end of the
// token just consumed (p.last), used to build the span of a multi-token
// construct.
func (p *Parser) spanFrom(startTok token.Token) source.Span {
	return source.Span{Lo: startTok.Span.Lo, Hi: p.last.Span.Hi}
}

// expect consumes curr if it has the given kind, or raises a fatal
// "expected token" diagnostic naming the single expected kind.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.curr.Kind != k {
		p.unexpected([]token.Kind{k})
	}
	t := p.curr
	p.bump()
	return t
}

// expectIdent consumes curr if it is an identifier, or raises a fatal
// diagnostic.
func (p *Parser) expectIdent() ast.Ident {
	if p.curr.Kind != token.Ident {
		p.unexpected([]token.Kind{token.Ident})
	}
	t := p.curr
	p.bump()
	return ast.Ident{Name: t.Name, Span: t.Span}
}

func (p *Parser) check(k token.Kind) bool {
	return p.curr.Kind == k
}

// unexpected raises the parser's "unexpected token" diagnostic per §4.3's
// error taxonomy and panics with fatal{} to unwind the current parse
// attempt. expected's rendering follows the bare-word-vs-backtick rule:
// Ident/Literal kinds render unquoted, everything else in backticks.
func (p *Parser) unexpected(expected []token.Kind) {
	var msg string
	if p.atEOF() {
		msg = "Expected token, found '<eof>'"
	} else {
		msg = "Unexpected token: Expected one of " + renderKindList(expected) +
			", found " + renderKind(p.curr.Kind)
	}
	p.diag.Emit(diag.Error, p.curr.Span, msg)
	panic(fatal{})
}

func renderKind(k token.Kind) string {
	if k.IsBareWord() {
		return k.String()
	}
	return "`" + k.String() + "`"
}

func renderKindList(kinds []token.Kind) string {
	out := ""
	for i, k := range kinds {
		if i > 0 {
			out += ", "
		}
		out += renderKind(k)
	}
	return out
}

// ParseCompilationUnit is the front end's single entry point: it tokenizes
// and parses fm's source into a best-effort CompilationUnit, collecting
// diagnostics along the way. A nil result with non-empty diagnostics means
// a syntactic error aborted the parse; a non-nil result may still carry
// diagnostics from earlier, recovered lexical errors.
func ParseCompilationUnit(fm *source.FileMap) (*ast.CompilationUnit, []*diag.Report) {
	d := &diag.Collector{}
	lx := lexer.New(fm, d)
	p := newParser(lx, d)

	var cu *ast.CompilationUnit
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(fatal); ok {
					cu = nil
					return
				}
				panic(r)
			}
		}()
		cu = p.parseCompilationUnit()
	}()

	return cu, d.Reports
}

// parseCompilationUnit implements §4.3's top-level loop: imports and
// top-level classes, accepted in any order, stopping at the first token
// that doesn't start either.
func (p *Parser) parseCompilationUnit() *ast.CompilationUnit {
	cu := &ast.CompilationUnit{}

	for !p.atEOF() {
		switch {
		case p.curr.Kind == token.Keyword && p.curr.Kw == token.KwImport:
			p.bump()
			imp := p.parseImport()
			cu.Items = append(cu.Items, ast.Item{Kind: ast.ItemImport, Import: imp})

		case p.startsClassDecl():
			class := p.parseTopLevelClass()
			cu.Items = append(cu.Items, ast.Item{Kind: ast.ItemClass, Class: class})

		default:
			return cu
		}
	}

	return cu
}

// startsClassDecl reports whether curr begins a top-level class
// declaration: either the `class` keyword itself, or a class-modifier
// keyword that must eventually lead into one.
func (p *Parser) startsClassDecl() bool {
	if p.curr.Kind != token.Keyword {
		return false
	}
	switch p.curr.Kw {
	case token.KwClass, token.KwPublic, token.KwProtected, token.KwPrivate,
		token.KwAbstract, token.KwStatic, token.KwFinal, token.KwSynchronized,
		token.KwNative, token.KwStrictfp, token.KwTransient, token.KwVolatile:
		return true
	default:
		return false
	}
}

// parseImport implements §4.3's parseImport: an Identifier, then a loop
// alternating `.` (push to path) with either another Identifier or, after
// a `*`, the terminating `;` of a wildcard import; a plain `;` ends a
// single import.
func (p *Parser) parseImport() *ast.Import {
	start := p.curr
	first := p.expectIdent()

	var path []ast.Ident
	last := first

	for {
		switch p.curr.Kind {
		case token.Semi:
			p.bump()
			return &ast.Import{
				Kind: ast.ImportSingle,
				Name: ast.Name{Path: path, Last: &last},
				Span: p.spanFrom(start),
			}
		case token.Dot:
			p.bump()
			if p.curr.Kind == token.Star {
				p.bump()
				p.expect(token.Semi)
				path = append(path, last)
				return &ast.Import{
					Kind: ast.ImportWildcard,
					Name: ast.Name{Path: path},
					Span: p.spanFrom(start),
				}
			}
			path = append(path, last)
			last = p.expectIdent()
		default:
			p.unexpected([]token.Kind{token.Dot, token.Semi})
		}
	}
}

// modifierSpans maps each collected ast.Modifier to the span of its
// occurrence, built by parseModifiers and consumed in source-span order by
// the call sites that validate it (parseTopLevelClass, parseMethod) per
// §9's "Ordered modifier validation" note.
type modifierSpans map[ast.Modifier]source.Span

// parseModifiers reads zero or more modifier keywords, recording each
// one's span. A repeated modifier is a fatal "Duplicate token" diagnostic
// at the duplicate's own span. Reading stops at the first token that is
// not a modifier keyword.
func (p *Parser) parseModifiers() modifierSpans {
	mods := modifierSpans{}
	for p.curr.Kind == token.Keyword {
		m, ok := modifierFromKeyword(p.curr.Kw)
		if !ok {
			break
		}
		if _, dup := mods[m]; dup {
			p.diag.Emit(diag.Error, p.curr.Span, "Duplicate token `"+m.String()+"`")
			panic(fatal{})
		}
		mods[m] = p.curr.Span
		p.bump()
	}
	return mods
}

func modifierFromKeyword(kw token.KeywordKind) (ast.Modifier, bool) {
	switch kw {
	case token.KwPublic:
		return ast.ModPublic, true
	case token.KwProtected:
		return ast.ModProtected, true
	case token.KwPrivate:
		return ast.ModPrivate, true
	case token.KwAbstract:
		return ast.ModAbstract, true
	case token.KwStatic:
		return ast.ModStatic, true
	case token.KwFinal:
		return ast.ModFinal, true
	case token.KwSynchronized:
		return ast.ModSynchronized, true
	case token.KwNative:
		return ast.ModNative, true
	case token.KwStrictfp:
		return ast.ModStrictfp, true
	case token.KwTransient:
		return ast.ModTransient, true
	case token.KwVolatile:
		return ast.ModVolatile, true
	default:
		return 0, false
	}
}

// orderedBySpans returns mods' keys sorted by ascending span start, giving
// deterministic, source-ordered diagnostics when more than one modifier is
// invalid at a given site.
func orderedBySpans(mods modifierSpans) []ast.Modifier {
	out := make([]ast.Modifier, 0, len(mods))
	for m := range mods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return mods[out[i]].Lo < mods[out[j]].Lo
	})
	return out
}

// parseTopLevelClass implements §4.3's parseTopLevelClass: modifiers
// (only Public permitted, Package the default), `class` keyword, name,
// then a `{`-delimited member loop.
func (p *Parser) parseTopLevelClass() *ast.Class {
	start := p.curr
	mods := p.parseModifiers()

	vis := ast.Package
	for _, m := range orderedBySpans(mods) {
		if m == ast.ModPublic {
			vis = ast.Public
			continue
		}
		p.diag.Emit(diag.Error, mods[m], "Unexpected class modifier `"+m.String()+"`")
		panic(fatal{})
	}

	if p.curr.Kind != token.Keyword || p.curr.Kw != token.KwClass {
		p.unexpected([]token.Kind{token.Keyword})
	}
	p.bump()
	name := p.expectIdent()
	p.expect(token.LBrace)

	class := &ast.Class{Name: name, Visibility: vis}

	for !p.check(token.RBrace) {
		if p.atEOF() {
			p.diag.Emit(diag.Error, p.curr.Span, "Expected token, found '<eof>'")
			panic(fatal{})
		}
		member := p.parseMember()
		if member != nil {
			class.Members = append(class.Members, *member)
		}
	}
	p.bump() // closing }

	class.Span = p.spanFrom(start)
	return class
}

// parseMember implements step 1-4 of §4.3's parseTopLevelClass member
// loop: member modifiers, a type identifier, a name identifier, then
// dispatch to a method header or a rough field-declaration skip.
func (p *Parser) parseMember() *ast.Member {
	start := p.curr
	mods := p.parseModifiers()
	typeIdent := p.expectIdent()
	nameIdent := p.expectIdent()

	switch p.curr.Kind {
	case token.LParen:
		method := p.parseMethod(start, nameIdent, typeIdent, mods)
		return &ast.Member{Kind: ast.MemberMethod, Method: method}
	case token.Semi, token.Assign, token.Comma:
		p.skipFieldDeclaration()
		return nil
	default:
		p.unexpected([]token.Kind{token.LParen, token.Semi, token.Assign, token.Comma})
		return nil
	}
}

// skipFieldDeclaration implements §9's deliberately rough field handling:
// consume tokens up to and including the next `;`.
func (p *Parser) skipFieldDeclaration() {
	for !p.check(token.Semi) {
		if p.atEOF() {
			p.diag.Emit(diag.Error, p.curr.Span, "Expected token, found '<eof>'")
			panic(fatal{})
		}
		p.bump()
	}
	p.bump()
}

// parseMethod implements §4.3's parseMethod: span-ordered modifier
// validation (at most one visibility modifier, Static/Final as flags,
// anything else fatal), a parenthesized parameter list, and a
// balanced-brace body skip.
func (p *Parser) parseMethod(start token.Token, name, returnType ast.Ident, mods modifierSpans) *ast.Method {
	m := &ast.Method{Visibility: ast.Package, Name: name, ReturnType: returnType}

	var visSpan *source.Span
	for _, mod := range orderedBySpans(mods) {
		span := mods[mod]
		switch mod {
		case ast.ModPublic, ast.ModProtected, ast.ModPrivate:
			if visSpan != nil {
				p.diag.Emitf(diag.Error, span, "Duplicate visibility modifier `%s`", mod).
					Note(*visSpan, "first visibility modifier here")
				panic(fatal{})
			}
			v := span
			visSpan = &v
			m.Visibility = visibilityFromModifier(mod)
		case ast.ModStatic:
			m.IsStatic = true
		case ast.ModFinal:
			m.IsFinal = true
		default:
			p.diag.Emit(diag.Error, span, "Unexpected method modifier `"+mod.String()+"`")
			panic(fatal{})
		}
	}

	p.expect(token.LParen)
	for !p.check(token.RParen) {
		if p.atEOF() {
			p.diag.Emit(diag.Error, p.curr.Span, "Expected token, found '<eof>'")
			panic(fatal{})
		}
		param := p.parseFormalParameter()
		m.Params = append(m.Params, param)
		if p.check(token.Comma) {
			p.bump()
		}
	}
	p.bump() // closing )

	p.skipMethodBody()

	m.Span = p.spanFrom(start)
	return m
}

func visibilityFromModifier(m ast.Modifier) ast.Visibility {
	switch m {
	case ast.ModPublic:
		return ast.Public
	case ast.ModProtected:
		return ast.Protected
	case ast.ModPrivate:
		return ast.Private
	default:
		return ast.Package
	}
}

// parseFormalParameter implements §4.3's parameter grammar: optional
// `final`, a type identifier, optional `[]` pairs before the name, the
// parameter name, then — only if no dims were read before the name —
// optional trailing `[]` pairs in the C-style position after it.
func (p *Parser) parseFormalParameter() ast.FormalParameter {
	isFinal := false
	if p.curr.Kind == token.Keyword && p.curr.Kw == token.KwFinal {
		isFinal = true
		p.bump()
	}

	typeIdent := p.expectIdent()
	dims := p.parseArrayDims()
	nameIdent := p.expectIdent()
	if dims == 0 {
		dims = p.parseArrayDims()
	}

	return ast.FormalParameter{Type: typeIdent, Name: nameIdent, ArrayDims: dims, IsFinal: isFinal}
}

// parseArrayDims implements §4.3's array-dim reader: consume `[` `]`
// pairs, counting them; an unmatched `[` is fatal.
func (p *Parser) parseArrayDims() int {
	dims := 0
	for p.check(token.LBracket) {
		p.bump()
		p.expect(token.RBracket)
		dims++
	}
	return dims
}

// skipMethodBody implements §4.3's balanced-brace skip: consume the
// opening `{` and everything up to its matching `}`, tracking nesting
// depth; EOF mid-block is fatal.
func (p *Parser) skipMethodBody() {
	p.expect(token.LBrace)
	depth := 1
	for depth > 0 {
		if p.atEOF() {
			p.diag.Emit(diag.Error, p.curr.Span, "Expected token, found '<eof>'")
			panic(fatal{})
		}
		switch p.curr.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.bump()
	}
}
