package parser

import (
	"testing"

	"github.com/corvidlang/javafront/ast"
	"github.com/corvidlang/javafront/source"
)

func mustParse(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	fm := source.New("Test.java", src)
	cu, reports := ParseCompilationUnit(fm)
	if cu == nil {
		t.Fatalf("parsing %q: got nil CompilationUnit, reports: %v", src, reports)
	}
	if len(reports) != 0 {
		t.Fatalf("parsing %q: unexpected diagnostics: %v", src, reports)
	}
	return cu
}

func TestParserEmptyPublicClass(t *testing.T) {
	cu := mustParse(t, "public class A {}")
	if len(cu.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(cu.Items))
	}
	item := cu.Items[0]
	if item.Kind != ast.ItemClass {
		t.Fatalf("item kind = %v, want ItemClass", item.Kind)
	}
	if item.Class.Name.Name != "A" {
		t.Errorf("class name = %q, want A", item.Class.Name.Name)
	}
	if item.Class.Visibility != ast.Public {
		t.Errorf("visibility = %v, want Public", item.Class.Visibility)
	}
	if len(item.Class.Members) != 0 {
		t.Errorf("got %d members, want 0", len(item.Class.Members))
	}
}

func TestParserSingleImport(t *testing.T) {
	cu := mustParse(t, "import a.b.C;")
	if len(cu.Items) != 1 || cu.Items[0].Kind != ast.ItemImport {
		t.Fatalf("items = %+v, want single ItemImport", cu.Items)
	}
	imp := cu.Items[0].Import
	if imp.Kind != ast.ImportSingle {
		t.Fatalf("import kind = %v, want ImportSingle", imp.Kind)
	}
	if imp.Name.Last == nil || imp.Name.Last.Name != "C" {
		t.Fatalf("import last segment = %+v, want C", imp.Name.Last)
	}
	if len(imp.Name.Path) != 2 || imp.Name.Path[0].Name != "a" || imp.Name.Path[1].Name != "b" {
		t.Errorf("import path = %+v, want [a b]", imp.Name.Path)
	}
}

func TestParserWildcardImport(t *testing.T) {
	cu := mustParse(t, "import a.b.*;")
	imp := cu.Items[0].Import
	if imp.Kind != ast.ImportWildcard {
		t.Fatalf("import kind = %v, want ImportWildcard", imp.Kind)
	}
	if len(imp.Name.Path) != 2 || imp.Name.Path[1].Name != "b" {
		t.Errorf("import path = %+v, want [a b]", imp.Name.Path)
	}
	if imp.Name.Last != nil {
		t.Errorf("wildcard import has trailing segment %+v, want nil", imp.Name.Last)
	}
}

func TestParserMainMethod(t *testing.T) {
	cu := mustParse(t, "class A { public static void main(String[] args) {} }")
	class := cu.Items[0].Class
	if len(class.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(class.Members))
	}
	method := class.Members[0].Method
	if method == nil {
		t.Fatalf("member is not a method: %+v", class.Members[0])
	}
	if method.Name.Name != "main" {
		t.Errorf("method name = %q, want main", method.Name.Name)
	}
	if method.ReturnType.Name != "void" {
		t.Errorf("return type = %q, want void", method.ReturnType.Name)
	}
	if method.Visibility != ast.Public {
		t.Errorf("visibility = %v, want Public", method.Visibility)
	}
	if !method.IsStatic {
		t.Errorf("IsStatic = false, want true")
	}
	if len(method.Params) != 1 {
		t.Fatalf("got %d params, want 1", len(method.Params))
	}
	p := method.Params[0]
	if p.Type.Name != "String" || p.Name.Name != "args" || p.ArrayDims != 1 {
		t.Errorf("param = %+v, want String[] args", p)
	}
}

func TestParserMethodBodySkipsBalancedBraces(t *testing.T) {
	cu := mustParse(t, "class A { void m() { if (x) { y(); } } }")
	method := cu.Items[0].Class.Members[0].Method
	if method.Name.Name != "m" {
		t.Fatalf("method name = %q, want m", method.Name.Name)
	}
}

func TestParserFieldDeclarationIsSkipped(t *testing.T) {
	cu := mustParse(t, "class A { int x = 1; void m() {} }")
	class := cu.Items[0].Class
	if len(class.Members) != 1 {
		t.Fatalf("got %d members, want 1 (field should be skipped, not recorded)", len(class.Members))
	}
	if class.Members[0].Method.Name.Name != "m" {
		t.Errorf("remaining member = %+v, want method m", class.Members[0])
	}
}

func TestParserDuplicateClassModifierIsFatal(t *testing.T) {
	fm := source.New("Test.java", "public public class A {}")
	cu, reports := ParseCompilationUnit(fm)
	if cu != nil {
		t.Fatalf("got non-nil CompilationUnit, want nil on fatal duplicate-modifier error")
	}
	if len(reports) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(reports), reports)
	}
}

func TestParserDuplicateVisibilityOnMethodIsFatal(t *testing.T) {
	fm := source.New("Test.java", "class A { public private void m() {} }")
	cu, reports := ParseCompilationUnit(fm)
	if cu != nil {
		t.Fatalf("got non-nil CompilationUnit, want nil on fatal duplicate-visibility error")
	}
	if len(reports) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(reports), reports)
	}
	if len(reports[0].Remarks) != 1 {
		t.Errorf("got %d remarks, want 1 pointing at the first visibility modifier", len(reports[0].Remarks))
	}
}

func TestParserUnexpectedEOFIsFatal(t *testing.T) {
	fm := source.New("Test.java", "class A {")
	cu, reports := ParseCompilationUnit(fm)
	if cu != nil {
		t.Fatalf("got non-nil CompilationUnit, want nil on unterminated class body")
	}
	if len(reports) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(reports), reports)
	}
}

func TestParserMultipleTopLevelClasses(t *testing.T) {
	cu := mustParse(t, "class A {} class B {}")
	if len(cu.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(cu.Items))
	}
	if cu.Items[0].Class.Name.Name != "A" || cu.Items[1].Class.Name.Name != "B" {
		t.Errorf("classes = %+v, want A then B", cu.Items)
	}
}

func TestParserImportsBeforeClasses(t *testing.T) {
	cu := mustParse(t, "import a.B; import c.*; class D {}")
	if len(cu.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(cu.Items))
	}
	if cu.Items[0].Kind != ast.ItemImport || cu.Items[1].Kind != ast.ItemImport || cu.Items[2].Kind != ast.ItemClass {
		t.Errorf("item kinds = %+v, want [import import class]", cu.Items)
	}
}

func TestParserFinalParameter(t *testing.T) {
	cu := mustParse(t, "class A { void m(final int x) {} }")
	p := cu.Items[0].Class.Members[0].Method.Params[0]
	if !p.IsFinal {
		t.Errorf("IsFinal = false, want true")
	}
	if p.Type.Name != "int" || p.Name.Name != "x" {
		t.Errorf("param = %+v, want final int x", p)
	}
}

func TestParserTrailingArrayDimsOnParameter(t *testing.T) {
	cu := mustParse(t, "class A { void m(int x[]) {} }")
	p := cu.Items[0].Class.Members[0].Method.Params[0]
	if p.ArrayDims != 1 {
		t.Errorf("ArrayDims = %d, want 1", p.ArrayDims)
	}
}

func TestParserMultipleParameters(t *testing.T) {
	cu := mustParse(t, "class A { void m(int x, String y) {} }")
	params := cu.Items[0].Class.Members[0].Method.Params
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params[0].Name.Name != "x" || params[1].Name.Name != "y" {
		t.Errorf("params = %+v, want [x y]", params)
	}
}
