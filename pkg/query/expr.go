package query

import (
	"encoding/json"
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Expr compiles a boolean expr-lang expression into a predicate for Where.
// The expression sees the element's JSON fields by their JSON names (name,
// color, layer, ...) plus "class" and "handle" (upper-case hex). Names the
// element lacks evaluate to nil.
//
//	keep, err := query.Expr[*records.LayerRecord](`color == 1 && !is_off`)
//	red := query.Where(layers.All(), keep)
func Expr[T types.Object](source string) (func(T) (bool, error), error) {
	if source == "" {
		return nil, fmt.Errorf("empty expression: %w", types.ErrInvalidArgument)
	}
	program, err := exprlang.Compile(source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w: %w", source, types.ErrInvalidArgument, err)
	}
	return func(v T) (bool, error) {
		return evalBool(program, source, v)
	}, nil
}

func evalBool(program *exprvm.Program, source string, obj types.Object) (bool, error) {
	env, err := exprEnv(obj)
	if err != nil {
		return false, err
	}
	out, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q on %s: %w", source, obj.Handle(), err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%q returned %T: %w", source, out, types.ErrTypeMismatch)
	}
	return b, nil
}

func exprEnv(obj types.Object) (map[string]any, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", obj.ClassName(), err)
	}
	env := map[string]any{}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", obj.ClassName(), err)
	}
	env["class"] = obj.ClassName()
	env["handle"] = obj.Handle().String()
	return env, nil
}
