// Package inspect checks that a function's source text contains a set of
// tokens. It is a textual check: tokens inside comments or string literals
// of the function count as present.
package inspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
)

var ErrMethodNotFound = errors.New("method not found")

// Span returns the source text of the function or method called name, from
// the func keyword to the closing brace of its body. For methods the
// receiver type may be given as "Type.Method".
func Span(src []byte, name string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	recv, fn := splitName(name)
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Name.Name != fn || fd.Body == nil {
			continue
		}
		if recv != "" && receiverType(fd) != recv {
			continue
		}
		start := fset.Position(fd.Pos()).Offset
		end := fset.Position(fd.End()).Offset
		return string(src[start:end]), nil
	}
	return "", fmt.Errorf("%w: %s", ErrMethodNotFound, name)
}

// Contains reports whether every token occurs in the span of name. A missing
// function or unparsable source counts as false.
func Contains(src []byte, name string, tokens []string) bool {
	body, err := Span(src, name)
	if err != nil {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(body, tok) {
			return false
		}
	}
	return true
}

// ValidateFile is Contains over the file at path. The error is only set when
// the file cannot be read.
func ValidateFile(path, name string, tokens []string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return Contains(src, name, tokens), nil
}

// Missing lists the tokens absent from the span, for diagnostics.
func Missing(src []byte, name string, tokens []string) ([]string, error) {
	body, err := Span(src, name)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tok := range tokens {
		if !strings.Contains(body, tok) {
			out = append(out, tok)
		}
	}
	return out, nil
}

func splitName(name string) (recv, fn string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func receiverType(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	t := fd.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	switch x := t.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.IndexExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}
