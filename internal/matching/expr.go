package matching

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprEnv is the environment request expressions are evaluated in.
//
//	method == "POST" && headers["Content-Type"] startsWith "application/json"
//	json.items[0].qty > 2
type ExprEnv struct {
	Method  string            `expr:"method"`
	URL     string            `expr:"url"`
	Host    string            `expr:"host"`
	Path    string            `expr:"path"`
	Query   map[string]string `expr:"query"`
	Headers map[string]string `expr:"headers"`
	Body    string            `expr:"body"`
	JSON    interface{}       `expr:"json"`
}

var (
	programMu    sync.RWMutex
	programCache = make(map[string]*vm.Program)
)

// MatchExpr evaluates a boolean expression against the request.
func MatchExpr(expression string, in *Input) (bool, error) {
	program, err := compileExpr(expression)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(program, newExprEnv(in))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", expression, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// ValidateExpr checks that expression compiles to a boolean program.
func ValidateExpr(expression string) error {
	_, err := compileExpr(expression)
	return err
}

func compileExpr(expression string) (*vm.Program, error) {
	programMu.RLock()
	program, ok := programCache[expression]
	programMu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression, expr.Env(ExprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}

	programMu.Lock()
	programCache[expression] = program
	programMu.Unlock()
	return program, nil
}

func newExprEnv(in *Input) ExprEnv {
	env := ExprEnv{
		Method:  in.Method,
		Query:   make(map[string]string),
		Headers: make(map[string]string),
		Body:    string(in.Body),
	}
	if in.URL != nil {
		env.URL = in.URL.String()
		env.Host = in.URL.Host
		env.Path = in.URL.Path
		for name, values := range in.URL.Query() {
			env.Query[name] = values[0]
		}
	}
	for name := range in.Header {
		env.Headers[name] = in.Header.Get(name)
	}
	if len(in.Body) > 0 {
		var data interface{}
		if json.Unmarshal(in.Body, &data) == nil {
			env.JSON = data
		}
	}
	return env
}
