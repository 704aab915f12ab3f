package adapter

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	m "covermark.dev/covermark/internal/model"
)

// EnginePackagePath is the import path of the runtime engine. The scanner
// only reports calls that go through this package, so unrelated functions
// that happen to be called Hit or Check are ignored.
const EnginePackagePath = "covermark.dev/covermark/pkg/covermark"

// GoFileAdapter encapsulates Go-specific parsing and call-site extraction so
// the domain layer can focus on correlating marks while delegating language
// details to an infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// ExtractSites inspects an AST and returns every covermark call site it
	// contains: hits on the production side, check declarations on the test
	// side. Files that do not import the engine yield nothing.
	ExtractSites(fileSet *token.FileSet, file *ast.File, path m.Path) []m.CallSite
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// ExtractSites walks the file's declarations and records every call into the
// engine package that carries a literal mark name. Names that reach the
// engine through variables or handles are invisible to the scanner; keeping
// mark names literal at call sites is what makes the reverse lookup work.
func (a *LocalGoFileAdapter) ExtractSites(fileSet *token.FileSet, file *ast.File, path m.Path) []m.CallSite {
	alias, ok := engineAlias(file)
	if !ok || alias == "_" {
		return nil
	}

	test := strings.HasSuffix(string(path), "_test.go")

	var sites []m.CallSite

	for _, decl := range file.Decls {
		funcName := ""
		if fn, isFunc := decl.(*ast.FuncDecl); isFunc {
			funcName = fn.Name.Name
		}

		ast.Inspect(decl, func(node ast.Node) bool {
			call, isCall := node.(*ast.CallExpr)
			if !isCall {
				return true
			}

			operation, matches := engineCall(call, alias)
			if !matches {
				return true
			}

			position := fileSet.Position(call.Pos())

			for _, name := range markNames(operation, call) {
				sites = append(sites, m.CallSite{
					Name:   name,
					Kind:   operationKind(operation),
					File:   path,
					Line:   position.Line,
					Column: position.Column,
					Func:   funcName,
					Test:   test,
				})
			}

			return true
		})
	}

	return sites
}

// engineAlias resolves the local name under which the file imports the
// engine package: an explicit alias, the default "covermark", or "." for
// dot imports.
func engineAlias(file *ast.File) (string, bool) {
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil || importPath != EnginePackagePath {
			continue
		}

		if imp.Name != nil {
			return imp.Name.Name, true
		}

		return "covermark", true
	}

	return "", false
}

// engineCall reports whether the call targets one of the engine's
// package-level operations through the given alias, and which one.
func engineCall(call *ast.CallExpr, alias string) (string, bool) {
	var name string

	switch fun := call.Fun.(type) {
	case *ast.SelectorExpr:
		ident, ok := fun.X.(*ast.Ident)
		if !ok || ident.Name != alias {
			return "", false
		}

		name = fun.Sel.Name
	case *ast.Ident:
		if alias != "." {
			return "", false
		}

		name = fun.Name
	default:
		return "", false
	}

	switch name {
	case "Hit", "Register", "Check", "CheckCount", "CheckWith":
		return name, true
	}

	return "", false
}

func operationKind(operation string) m.SiteKind {
	switch operation {
	case "Hit", "Register":
		return m.SiteHit
	default:
		return m.SiteCheck
	}
}

// markNames extracts the literal mark names an engine call mentions. Each
// operation keeps its names in a different argument position.
func markNames(operation string, call *ast.CallExpr) []string {
	switch operation {
	case "Hit", "Register":
		if len(call.Args) < 1 {
			return nil
		}

		return stringLits(call.Args[:1])

	case "Check":
		if len(call.Args) < 2 {
			return nil
		}

		return stringLits(call.Args[1:])

	case "CheckCount":
		if len(call.Args) < 2 {
			return nil
		}

		return stringLits(call.Args[1:2])

	case "CheckWith":
		if len(call.Args) < 2 {
			return nil
		}

		return expectationKeys(call.Args[1])
	}

	return nil
}

func stringLits(args []ast.Expr) []string {
	var names []string

	for _, arg := range args {
		if name, ok := stringLit(arg); ok {
			names = append(names, name)
		}
	}

	return names
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}

	return value, true
}

// expectationKeys pulls the literal keys out of an Expectations composite
// literal passed to CheckWith.
func expectationKeys(expr ast.Expr) []string {
	composite, ok := expr.(*ast.CompositeLit)
	if !ok {
		return nil
	}

	var names []string

	for _, elt := range composite.Elts {
		kv, isKV := elt.(*ast.KeyValueExpr)
		if !isKV {
			continue
		}

		if name, isLit := stringLit(kv.Key); isLit {
			names = append(names, name)
		}
	}

	return names
}
