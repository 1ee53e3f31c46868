// Package evaluator walks the syntax tree and executes it
package evaluator

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/retrolang/basic/ast"
	"github.com/retrolang/basic/berrors"
	"github.com/retrolang/basic/builtins"
	"github.com/retrolang/basic/object"
	"github.com/retrolang/basic/parser"
)

// Interpreter owns the variable environment and runs programs
// against it
type Interpreter struct {
	env *object.Environment
}

// New builds an interpreter talking to the given console
func New(term object.Console) *Interpreter {
	return &Interpreter{env: object.NewTermEnvironment(term)}
}

// Execute parses and runs a program from a clean state
func (in *Interpreter) Execute(source string) error {
	return in.execute(source, true)
}

// ExecuteKeep runs a program with variables surviving from
// earlier calls, for incremental sessions
func (in *Interpreter) ExecuteKeep(source string) error {
	return in.execute(source, false)
}

func (in *Interpreter) execute(source string, resetState bool) error {
	program, err := parser.Parse(source)
	if err != nil {
		return err
	}

	if resetState {
		in.env.Clear()
	}

	return runStatements(program, in.env)
}

// Env exposes the environment, the command driver pokes at it
func (in *Interpreter) Env() *object.Environment {
	return in.env
}

// runStatements drives execution with an explicit program counter.
// A jump outcome resets the counter, nothing else may consume one.
func runStatements(stmts []ast.Statement, env *object.Environment) error {
	labels := make(map[string]int)
	for i, stmt := range stmts {
		lbl, ok := stmt.(*ast.LabelStatement)
		if !ok {
			continue
		}
		if _, dup := labels[lbl.Name]; dup {
			return &berrors.RuntimeError{Code: berrors.DuplicateDefinition, Detail: "label " + lbl.Name}
		}
		labels[lbl.Name] = i
	}

	pc := 0
	for pc < len(stmts) {
		rc := Eval(stmts[pc], env)

		switch rc := rc.(type) {
		case *object.Jump:
			target, ok := labels[rc.Target]
			if !ok {
				return &berrors.RuntimeError{Code: berrors.UndefinedLabel, Detail: rc.Target}
			}
			pc = target
		case *object.Error:
			return &berrors.RuntimeError{Code: rc.Code, Detail: rc.Detail}
		default:
			pc++
		}
	}

	return nil
}

// Eval evaluates one node against the environment
func Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {

	// statements
	case *ast.PrintStatement:
		return evalPrintStatement(node, env)
	case *ast.LetStatement:
		return evalLetStatement(node, env)
	case *ast.InputStatement:
		return evalInputStatement(node, env)
	case *ast.ClsStatement:
		env.Terminal().Cls()
		return nil
	case *ast.DimStatement:
		return evalDimStatement(node, env)
	case *ast.IfStatement:
		return evalIfStatement(node, env)
	case *ast.ForStatement:
		return evalForStatement(node, env)
	case *ast.WhileStatement:
		return evalWhileStatement(node, env)
	case *ast.GotoStatement:
		return &object.Jump{Target: node.Target}
	case *ast.LabelStatement:
		return nil

	// expressions
	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.EmptyExpression:
		return &object.String{Value: ""}
	case *ast.Identifier:
		return evalIdentifier(node, env)
	case *ast.GroupedExpression:
		return Eval(node.Exp, env)
	case *ast.PrefixExpression:
		return evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return evalInfixExpression(node, env)
	case *ast.IndexExpression:
		return evalIndexExpression(node, env)
	case *ast.CallExpression:
		return evalCallExpression(node, env)
	}

	return nil
}

// evalBlock runs a branch or loop body, errors and jumps unwind
// to whoever can handle them
func evalBlock(stmts []ast.Statement, env *object.Environment) object.Object {
	for _, stmt := range stmts {
		rc := Eval(stmt, env)
		if rc != nil {
			rt := rc.Type()
			if (rt == object.ERROR_OBJ) || (rt == object.JUMP_OBJ) {
				return rc
			}
		}
	}
	return nil
}

func evalPrintStatement(stmt *ast.PrintStatement, env *object.Environment) object.Object {
	var out bytes.Buffer

	for _, item := range stmt.Items {
		rc := Eval(item, env)
		if isError(rc) {
			return rc
		}
		out.WriteString(stringify(rc))
	}

	env.Terminal().Println(out.String())
	return nil
}

func evalLetStatement(stmt *ast.LetStatement, env *object.Environment) object.Object {
	rc := Eval(stmt.Value, env)
	if isError(rc) {
		return rc
	}

	if stmt.Index != nil {
		return evalArrayStore(stmt, rc, env)
	}

	v, ok := env.Get(stmt.Name.Value)
	if !ok {
		// auto-created variables take their type from the value
		typeID := object.SingleType
		if rc.Type() == object.STRING_OBJ {
			typeID = object.StringType
		}
		env.Set(stmt.Name.Value, &object.Variable{TypeID: typeID, Value: rc})
		return nil
	}

	if v.Value.Type() == object.ARRAY_OBJ {
		return typeError("array " + stmt.Name.Value + " needs an index")
	}
	if err := checkAssign(stmt.Name.Value, v.TypeID, rc); err != nil {
		return err
	}
	v.Value = rc

	return nil
}

func evalArrayStore(stmt *ast.LetStatement, rc object.Object, env *object.Environment) object.Object {
	v, ok := env.Get(stmt.Name.Value)
	if !ok {
		return &object.Error{Code: berrors.UndefinedVariable, Detail: stmt.Name.Value}
	}
	arr, ok := v.Value.(*object.Array)
	if !ok {
		return typeError(stmt.Name.Value + " is not an array")
	}

	idx, err := evalIndexValue(stmt.Index, len(arr.Elements), env)
	if err != nil {
		return err
	}
	if errObj := checkAssign(stmt.Name.Value, v.TypeID, rc); errObj != nil {
		return errObj
	}
	arr.Elements[idx] = rc

	return nil
}

func evalInputStatement(stmt *ast.InputStatement, env *object.Environment) object.Object {
	line, ok := env.Terminal().ReadLine()
	if !ok {
		return &object.Error{Code: berrors.IllegalFuncCall, Detail: "INPUT past end of input"}
	}

	var val object.Object
	trimmed := strings.TrimSpace(line)
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		val = &object.Number{Value: n}
	} else {
		val = &object.String{Value: line}
	}

	v, ok := env.Get(stmt.Name.Value)
	if !ok {
		typeID := object.SingleType
		if val.Type() == object.STRING_OBJ {
			typeID = object.StringType
		}
		env.Set(stmt.Name.Value, &object.Variable{TypeID: typeID, Value: val})
		return nil
	}

	if err := checkAssign(stmt.Name.Value, v.TypeID, val); err != nil {
		return err
	}
	v.Value = val

	return nil
}

func evalDimStatement(stmt *ast.DimStatement, env *object.Environment) object.Object {
	if _, ok := env.Get(stmt.Name.Value); ok {
		return &object.Error{Code: berrors.DuplicateDefinition, Detail: stmt.Name.Value}
	}

	var val object.Object
	if stmt.Size > 0 {
		elements := make([]object.Object, stmt.Size)
		for i := range elements {
			elements[i] = object.DefaultValue(stmt.TypeName)
		}
		val = &object.Array{Elements: elements, TypeID: stmt.TypeName}
	} else {
		val = object.DefaultValue(stmt.TypeName)
	}

	env.Set(stmt.Name.Value, &object.Variable{TypeID: stmt.TypeName, Value: val})
	return nil
}

func evalIfStatement(stmt *ast.IfStatement, env *object.Environment) object.Object {
	cond := Eval(stmt.Condition, env)
	if isError(cond) {
		return cond
	}

	if truthy(cond) {
		return evalBlock(stmt.Consequence, env)
	}
	if stmt.Alternative != nil {
		return evalBlock(stmt.Alternative, env)
	}

	return nil
}

func evalForStatement(stmt *ast.ForStatement, env *object.Environment) object.Object {
	// start, end and step are evaluated exactly once
	startN, errObj := evalNumericOperand(stmt.Start, "FOR", env)
	if errObj != nil {
		return errObj
	}
	endN, errObj := evalNumericOperand(stmt.End, "FOR", env)
	if errObj != nil {
		return errObj
	}
	stepN := 1.0
	if stmt.Step != nil {
		stepN, errObj = evalNumericOperand(stmt.Step, "STEP", env)
		if errObj != nil {
			return errObj
		}
	}

	if errObj := setLoopVar(stmt.Var.Value, startN, env); errObj != nil {
		return errObj
	}

	cur := startN
	for {
		if (stepN > 0) && (cur > endN) {
			return nil
		}
		if (stepN <= 0) && (cur < endN) {
			return nil
		}

		rc := evalBlock(stmt.Body, env)
		if rc != nil {
			return rc
		}

		// the body may have moved the loop variable
		cur, errObj = readLoopVar(stmt.Var.Value, env)
		if errObj != nil {
			return errObj
		}
		cur += stepN
		if errObj := setLoopVar(stmt.Var.Value, cur, env); errObj != nil {
			return errObj
		}
	}
}

func evalWhileStatement(stmt *ast.WhileStatement, env *object.Environment) object.Object {
	for {
		cond := Eval(stmt.Condition, env)
		if isError(cond) {
			return cond
		}
		if !truthy(cond) {
			return nil
		}

		rc := evalBlock(stmt.Body, env)
		if rc != nil {
			return rc
		}
	}
}

func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	v, ok := env.Get(node.Value)
	if !ok {
		return &object.Error{Code: berrors.UndefinedVariable, Detail: node.Value}
	}
	if v.Value.Type() == object.ARRAY_OBJ {
		return typeError("array " + node.Value + " needs an index")
	}
	return v.Value
}

func evalPrefixExpression(node *ast.PrefixExpression, env *object.Environment) object.Object {
	rc := Eval(node.Right, env)
	if isError(rc) {
		return rc
	}

	if node.Operator == "NOT" {
		return boolToNum(!truthy(rc))
	}

	n, ok := rc.(*object.Number)
	if !ok {
		return typeError("operator " + node.Operator + " expects a numeric operand")
	}
	if node.Operator == "-" {
		return &object.Number{Value: -n.Value}
	}
	return &object.Number{Value: n.Value}
}

func evalInfixExpression(node *ast.InfixExpression, env *object.Environment) object.Object {
	left := Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "+":
		return evalPlus(left, right)
	case "-", "*", "/":
		return evalArithmetic(node.Operator, left, right)
	case "=", "<>", "<", ">", "<=", ">=":
		return evalComparison(node.Operator, left, right)
	case "AND":
		return boolToNum(truthy(left) && truthy(right))
	case "OR":
		return boolToNum(truthy(left) || truthy(right))
	}

	return typeError("unknown operator " + node.Operator)
}

// a plus concatenates whenever either side is a string
func evalPlus(left, right object.Object) object.Object {
	if (left.Type() == object.STRING_OBJ) || (right.Type() == object.STRING_OBJ) {
		return &object.String{Value: stringify(left) + stringify(right)}
	}
	return evalArithmetic("+", left, right)
}

func evalArithmetic(op string, left, right object.Object) object.Object {
	ln, ok := left.(*object.Number)
	if !ok {
		return typeError("operator " + op + " expects numeric operands")
	}
	rn, ok := right.(*object.Number)
	if !ok {
		return typeError("operator " + op + " expects numeric operands")
	}

	switch op {
	case "+":
		return &object.Number{Value: ln.Value + rn.Value}
	case "-":
		return &object.Number{Value: ln.Value - rn.Value}
	case "*":
		return &object.Number{Value: ln.Value * rn.Value}
	case "/":
		// division never traps, a zero divisor yields infinity
		if rn.Value == 0 {
			return &object.Number{Value: math.Inf(1)}
		}
		return &object.Number{Value: ln.Value / rn.Value}
	}

	return typeError("unknown operator " + op)
}

func evalComparison(op string, left, right object.Object) object.Object {
	ln, lnum := left.(*object.Number)
	rn, rnum := right.(*object.Number)
	if lnum && rnum {
		return compareOrdered(op, ln.Value, rn.Value)
	}

	ls, lstr := left.(*object.String)
	rs, rstr := right.(*object.String)
	if lstr && rstr {
		return compareOrdered(op, ls.Value, rs.Value)
	}

	// mixed types only support equality, via their displayed forms
	switch op {
	case "=":
		return boolToNum(stringify(left) == stringify(right))
	case "<>":
		return boolToNum(stringify(left) != stringify(right))
	}

	return typeError("cannot order " + string(left.Type()) + " against " + string(right.Type()))
}

func compareOrdered[T float64 | string](op string, l, r T) object.Object {
	switch op {
	case "=":
		return boolToNum(l == r)
	case "<>":
		return boolToNum(l != r)
	case "<":
		return boolToNum(l < r)
	case ">":
		return boolToNum(l > r)
	case "<=":
		return boolToNum(l <= r)
	case ">=":
		return boolToNum(l >= r)
	}
	return typeError("unknown operator " + op)
}

func evalIndexExpression(node *ast.IndexExpression, env *object.Environment) object.Object {
	v, ok := env.Get(node.Name.Value)
	if !ok {
		return &object.Error{Code: berrors.UndefinedVariable, Detail: node.Name.Value}
	}
	arr, ok := v.Value.(*object.Array)
	if !ok {
		return typeError(node.Name.Value + " is not an array")
	}

	idx, err := evalIndexValue(node.Index, len(arr.Elements), env)
	if err != nil {
		return err
	}
	return arr.Elements[idx]
}

func evalCallExpression(node *ast.CallExpression, env *object.Environment) object.Object {
	fn, ok := builtins.Builtins[node.Function]
	if !ok {
		return &object.Error{Code: berrors.UndefinedFunction, Detail: node.Function}
	}

	args := make([]object.Object, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		rc := Eval(a, env)
		if isError(rc) {
			return rc
		}
		args = append(args, rc)
	}

	return fn.Fn(env, fn, args...)
}

// evalIndexValue evaluates a subscript, floors it, and bounds-checks
// it against [0, length)
func evalIndexValue(exp ast.Expression, length int, env *object.Environment) (int, object.Object) {
	rc := Eval(exp, env)
	if isError(rc) {
		return 0, rc
	}
	n, ok := rc.(*object.Number)
	if !ok {
		return 0, typeError("array subscript must be numeric")
	}

	idx := int(math.Floor(n.Value))
	if (idx < 0) || (idx >= length) {
		return 0, &object.Error{Code: berrors.SubscriptRange, Detail: rc.Inspect()}
	}
	return idx, nil
}

func evalNumericOperand(exp ast.Expression, what string, env *object.Environment) (float64, object.Object) {
	rc := Eval(exp, env)
	if isError(rc) {
		return 0, rc
	}
	n, ok := rc.(*object.Number)
	if !ok {
		return 0, typeError(what + " expects a numeric value")
	}
	return n.Value, nil
}

func setLoopVar(name string, val float64, env *object.Environment) object.Object {
	v, ok := env.Get(name)
	if !ok {
		env.Set(name, &object.Variable{TypeID: object.SingleType, Value: &object.Number{Value: val}})
		return nil
	}
	if !object.NumericType(v.TypeID) {
		return typeError("loop variable " + name + " is not numeric")
	}
	v.Value = &object.Number{Value: val}
	return nil
}

func readLoopVar(name string, env *object.Environment) (float64, object.Object) {
	v, ok := env.Get(name)
	if !ok {
		return 0, &object.Error{Code: berrors.UndefinedVariable, Detail: name}
	}
	n, ok := v.Value.(*object.Number)
	if !ok {
		return 0, typeError("loop variable " + name + " is not numeric")
	}
	return n.Value, nil
}

// checkAssign enforces the declared type of an existing variable
func checkAssign(name, typeID string, val object.Object) object.Object {
	if object.NumericType(typeID) && (val.Type() != object.NUMBER_OBJ) {
		return typeError("cannot assign " + strings.ToLower(string(val.Type())) + " to " + name)
	}
	if (typeID == object.StringType) && (val.Type() != object.STRING_OBJ) {
		return typeError("cannot assign " + strings.ToLower(string(val.Type())) + " to " + name)
	}
	return nil
}

func truthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Number:
		return obj.Value != 0
	case *object.String:
		return obj.Value != ""
	}
	return false
}

// comparisons and logic yield -1 for true, 0 for false
func boolToNum(b bool) *object.Number {
	if b {
		return &object.Number{Value: -1}
	}
	return &object.Number{Value: 0}
}

func stringify(obj object.Object) string {
	switch obj := obj.(type) {
	case *object.Number:
		return object.FormatNumber(obj.Value)
	case *object.String:
		return obj.Value
	}
	return obj.Inspect()
}

func typeError(detail string) *object.Error {
	return &object.Error{Code: berrors.TypeMismatch, Detail: detail}
}

func isError(obj object.Object) bool {
	return (obj != nil) && (obj.Type() == object.ERROR_OBJ)
}
