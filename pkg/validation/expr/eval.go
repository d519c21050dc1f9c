// Package expr evaluates the restricted boolean expressions used by expression
// validators. The language covers literals, variable lookup, arithmetic,
// comparisons, membership and boolean composition. There are no calls,
// attribute access or assignments, so an expression can only read the
// variables it is given.
package expr

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var (
	ErrSyntax         = errors.New("expr: syntax error")
	ErrUnknownName    = errors.New("expr: unknown name")
	ErrType           = errors.New("expr: unsupported operand types")
	ErrDivisionByZero = errors.New("expr: division by zero")
)

// Program is a parsed expression ready to be evaluated many times.
type Program struct {
	source string
	tree   *Expression
}

// Compile parses source.
func Compile(source string) (*Program, error) {
	tree, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return &Program{source: source, tree: tree}, nil
}

func (p *Program) String() string { return p.source }

// Eval evaluates the program against vars. Boolean operators return one of
// their operands, so the result is not necessarily a bool.
func (p *Program) Eval(vars map[string]any) (any, error) {
	return (&scope{vars: vars}).expression(p.tree)
}

// Test reports whether the program evaluates to the boolean true. Truthy
// values that are not booleans do not pass.
func (p *Program) Test(vars map[string]any) (bool, error) {
	value, err := p.Eval(vars)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	return ok && b, nil
}

// Eval compiles and evaluates source in one step.
func Eval(source string, vars map[string]any) (any, error) {
	program, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return program.Eval(vars)
}

// EvalBool compiles source and reports whether it evaluates to true.
func EvalBool(source string, vars map[string]any) (bool, error) {
	program, err := Compile(source)
	if err != nil {
		return false, err
	}
	return program.Test(vars)
}

type scope struct {
	vars map[string]any
}

func (s *scope) expression(node *Expression) (any, error) {
	return s.or(node.Or)
}

func (s *scope) or(node *OrExpr) (any, error) {
	value, err := s.and(node.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range node.Right {
		if truthy(value) {
			return value, nil
		}
		if value, err = s.and(right); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (s *scope) and(node *AndExpr) (any, error) {
	value, err := s.not(node.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range node.Right {
		if !truthy(value) {
			return value, nil
		}
		if value, err = s.not(right); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (s *scope) not(node *NotExpr) (any, error) {
	if node.Not != nil {
		value, err := s.not(node.Not)
		if err != nil {
			return nil, err
		}
		return !truthy(value), nil
	}
	return s.compare(node.Compare)
}

func (s *scope) compare(node *Compare) (any, error) {
	left, err := s.sum(node.Left)
	if err != nil {
		return nil, err
	}
	if len(node.Ops) == 0 {
		return left, nil
	}
	for _, op := range node.Ops {
		right, err := s.sum(op.Right)
		if err != nil {
			return nil, err
		}
		ok, err := compareValues(strings.Join(op.Op, " "), left, right)
		if err != nil {
			return nil, err
		}
		if !ok {
			return false, nil
		}
		left = right
	}
	return true, nil
}

func (s *scope) sum(node *Sum) (any, error) {
	value, err := s.term(node.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range node.Right {
		right, err := s.term(op.Term)
		if err != nil {
			return nil, err
		}
		if value, err = arithmetic(op.Op, value, right); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (s *scope) term(node *Term) (any, error) {
	value, err := s.unary(node.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range node.Right {
		right, err := s.unary(op.Unary)
		if err != nil {
			return nil, err
		}
		if value, err = arithmetic(op.Op, value, right); err != nil {
			return nil, err
		}
	}
	return value, nil
}

func (s *scope) unary(node *Unary) (any, error) {
	if node.Negate != nil {
		value, err := s.unary(node.Negate)
		if err != nil {
			return nil, err
		}
		n, ok := number(value)
		if !ok {
			return nil, fmt.Errorf("%w: -%s", ErrType, typeName(value))
		}
		return -n, nil
	}
	return s.primary(node.Primary)
}

func (s *scope) primary(node *Primary) (any, error) {
	switch {
	case node.Number != nil:
		return *node.Number, nil
	case node.String != nil:
		return *node.String, nil
	case node.Bool != nil:
		return strings.EqualFold(*node.Bool, "true"), nil
	case node.None != nil:
		return nil, nil
	case node.List != nil:
		items := make([]any, 0, len(node.List.Items))
		for _, item := range node.List.Items {
			value, err := s.expression(item)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case node.Dict != nil:
		out := make(map[string]any, len(node.Dict.Entries))
		for _, entry := range node.Dict.Entries {
			key, err := s.expression(entry.Key)
			if err != nil {
				return nil, err
			}
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: mapping key %s", ErrType, typeName(key))
			}
			value, err := s.expression(entry.Value)
			if err != nil {
				return nil, err
			}
			out[name] = value
		}
		return out, nil
	case node.Name != nil:
		value, ok := s.vars[*node.Name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownName, *node.Name)
		}
		return normalize(value), nil
	case node.Group != nil:
		return s.expression(node.Group)
	}
	return nil, ErrSyntax
}

func compareValues(op string, left, right any) (bool, error) {
	switch op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "is":
		return identical(left, right), nil
	case "is not":
		return !identical(left, right), nil
	case "in":
		return contains(right, left)
	case "not in":
		found, err := contains(right, left)
		return !found, err
	}

	cmp, err := order(left, right)
	if err != nil {
		return false, fmt.Errorf("%w: %s %s %s", err, typeName(left), op, typeName(right))
	}
	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("%w: operator %q", ErrSyntax, op)
}

func order(left, right any) (int, error) {
	if l, ok := number(left); ok {
		if r, ok := number(right); ok {
			switch {
			case l < r:
				return -1, nil
			case l > r:
				return 1, nil
			}
			return 0, nil
		}
	}
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return strings.Compare(l, r), nil
		}
	}
	return 0, ErrType
}

func contains(container, item any) (bool, error) {
	switch c := container.(type) {
	case []any:
		for _, candidate := range c {
			if equal(candidate, item) {
				return true, nil
			}
		}
		return false, nil
	case string:
		needle, ok := item.(string)
		if !ok {
			return false, fmt.Errorf("%w: %s in string", ErrType, typeName(item))
		}
		return strings.Contains(c, needle), nil
	case map[string]any:
		key, ok := item.(string)
		if !ok {
			return false, nil
		}
		_, found := c[key]
		return found, nil
	}
	return false, fmt.Errorf("%w: %s is not a container", ErrType, typeName(container))
}

func arithmetic(op string, left, right any) (any, error) {
	if op == "+" {
		switch l := left.(type) {
		case string:
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		case []any:
			if r, ok := right.([]any); ok {
				out := make([]any, 0, len(l)+len(r))
				return append(append(out, l...), r...), nil
			}
		}
	}

	l, lok := number(left)
	r, rok := number(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %s %s %s", ErrType, typeName(left), op, typeName(right))
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		// Result takes the sign of the divisor.
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: operator %q", ErrSyntax, op)
}

func equal(left, right any) bool {
	if l, ok := number(left); ok {
		r, ok := number(right)
		return ok && l == r
	}
	switch l := left.(type) {
	case nil:
		return right == nil
	case string:
		r, ok := right.(string)
		return ok && l == r
	case []any:
		r, ok := right.([]any)
		if !ok || len(l) != len(r) {
			return false
		}
		for i := range l {
			if !equal(l[i], r[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		r, ok := right.(map[string]any)
		if !ok || len(l) != len(r) {
			return false
		}
		for key, value := range l {
			other, found := r[key]
			if !found || !equal(value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func identical(left, right any) bool {
	if reflect.TypeOf(left) != reflect.TypeOf(right) {
		return false
	}
	return equal(left, right)
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "none"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", value)
}

// normalize maps host values onto the expression value set: nil, bool,
// float64, string, []any and map[string]any.
func normalize(value any) any {
	switch v := value.(type) {
	case nil, bool, float64, string:
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	}
	return fmt.Sprint(value)
}
