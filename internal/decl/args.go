package decl

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/okra-platform/adaptergen/internal/errors"
)

// ParseArgs evaluates the positional arguments of an annotation. true and
// false become bool, numeric literals int64 or float64, string literals
// string. Anything else is kept as its source text so the caller can treat it
// as "not a boolean".
func ParseArgs(src string) ([]any, error) {
	if src == "" {
		return nil, nil
	}
	expr, err := parser.ParseExpr("f(" + src + ")")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid annotation arguments %q", src)
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return nil, errors.Newf("invalid annotation arguments %q", src)
	}

	out := make([]any, 0, len(call.Args))
	for _, arg := range call.Args {
		out = append(out, argValue(src, arg))
	}
	return out, nil
}

func argValue(src string, arg ast.Expr) any {
	switch a := arg.(type) {
	case *ast.Ident:
		switch a.Name {
		case "true":
			return true
		case "false":
			return false
		}
	case *ast.BasicLit:
		switch a.Kind {
		case token.INT:
			if v, err := strconv.ParseInt(a.Value, 0, 64); err == nil {
				return v
			}
		case token.FLOAT:
			if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
				return v
			}
		case token.STRING:
			if v, err := strconv.Unquote(a.Value); err == nil {
				return v
			}
		}
	}
	// positions are offsets into "f(" + src + ")"
	start, end := int(arg.Pos())-1-2, int(arg.End())-1-2
	if start >= 0 && end <= len(src) && start < end {
		return src[start:end]
	}
	return nil
}
