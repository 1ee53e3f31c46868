// Package object how the interpreter holds values during execution
package object

import (
	"bytes"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/retrolang/basic/berrors"
)

// BuiltinFunction is a function implemented natively by the evaluator
type BuiltinFunction func(env *Environment, fn *Builtin, args ...Object) Object

// ObjectType can always be displayed as a string
type ObjectType string

type Object interface {
	Type() ObjectType
	Inspect() string
}

const (
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"
	ARRAY_OBJ   = "ARRAY"
	ERROR_OBJ   = "ERROR"
	BUILTIN_OBJ = "BUILTIN"
	JUMP_OBJ    = "JUMP"
)

// the four declared variable types
const (
	IntegerType = "INTEGER"
	SingleType  = "SINGLE"
	DoubleType  = "DOUBLE"
	StringType  = "STRING"
)

// NumericType reports whether a declared type holds numbers.
func NumericType(typeID string) bool {
	switch typeID {
	case IntegerType, SingleType, DoubleType:
		return true
	}
	return false
}

// DefaultValue returns the value a freshly declared variable
// or array slot holds, zero for numbers, "" for strings.
func DefaultValue(typeID string) Object {
	if typeID == StringType {
		return &String{Value: ""}
	}
	return &Number{Value: 0}
}

// FormatNumber is the default numeric-to-string conversion used
// by PRINT and by string concatenation.  Exponential form kicks in
// at magnitude 1e7 and below 1e-4, matching the dialect's display
// convention rather than the host language's.
func FormatNumber(v float64) string {
	av := math.Abs(v)
	if (v != 0) && !math.IsInf(v, 0) && ((av >= 1e7) || (av < 1e-4)) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Console defines how to collect input and display output
type Console interface {
	Cls()
	Print(string)
	Println(string)

	// ReadLine returns the next line of input, false on end-of-input
	ReadLine() (string, bool)
}

// Number is any numeric value, the runtime keeps them all as float64
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return FormatNumber(n.Value) }

// String values
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Array is a fixed-size sequence of scalars of one declared type
type Array struct {
	Elements []Object
	TypeID   string
}

func (ao *Array) Type() ObjectType { return ARRAY_OBJ }
func (ao *Array) Inspect() string {
	var out bytes.Buffer
	elements := []string{}
	for _, e := range ao.Elements {
		if e != nil {
			elements = append(elements, e.Inspect())
		}
	}
	out.WriteString(strings.Join(elements, ", "))
	return out.String()
}

// Variable binds a declared type to a scalar or array value,
// the type never changes once declared
type Variable struct {
	TypeID string
	Value  Object
}

// Error carries a runtime error code and detail text
type Error struct {
	Code   int
	Detail string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	msg := berrors.TextForError(e.Code)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return "ERROR: " + msg
}

// Jump is the control-transfer outcome of a GOTO statement.
// It is not an error, the statement dispatch loop is the only
// code allowed to consume one.
type Jump struct {
	Target string
}

func (j *Jump) Type() ObjectType { return JUMP_OBJ }
func (j *Jump) Inspect() string  { return "GOTO " + j.Target }

type Builtin struct {
	Fn BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }

// NewTermEnvironment creates an environment with a console front-end
func NewTermEnvironment(term Console) *Environment {
	e := &Environment{
		vars: make(map[string]*Variable),
		term: term,
	}

	// initialize my random number generator
	e.rnd = rand.New(rand.NewSource(37))
	e.rndVal = e.rnd.Float64()
	return e
}

// Environment holds the program's variables
type Environment struct {
	vars map[string]*Variable // variables, keyed by upper-cased name
	term Console              // the console front-end

	rnd    *rand.Rand // random number generator
	rndVal float64    // most recent generated value
}

// Get attempts to retrieve a variable from the environment
func (e *Environment) Get(name string) (*Variable, bool) {
	v, ok := e.vars[strings.ToUpper(name)]
	return v, ok
}

// Set stores a variable in the environment
func (e *Environment) Set(name string, v *Variable) {
	e.vars[strings.ToUpper(name)] = v
}

// Clear throws away all variables, used at the start of a fresh run
func (e *Environment) Clear() {
	e.vars = make(map[string]*Variable)
}

// Terminal allows access to the console
func (e *Environment) Terminal() Console {
	return e.term
}

// Random returns a random number between 0 and 1
// if x is greater than zero, a new random number is generated
// otherwise, the current rndVal is returned
func (e *Environment) Random(x int) *Number {
	if x > 0 {
		e.rndVal = e.rnd.Float64()
	}
	return &Number{Value: e.rndVal}
}

// Randomize takes in a new seed and starts a new random series
func (e *Environment) Randomize(seed int64) {
	e.rnd = rand.New(rand.NewSource(seed))
	e.rndVal = e.rnd.Float64()
}
