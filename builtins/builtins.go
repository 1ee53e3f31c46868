// Package builtins the functions implemented natively by the evaluator
package builtins

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/retrolang/basic/berrors"
	"github.com/retrolang/basic/object"
)

// Builtins the registry of native functions, fixed at startup
var Builtins = map[string]*object.Builtin{
	"ABS": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("ABS", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Abs(v)}
	}},

	"ASC": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		s, err := oneStrArg("ASC", args)
		if err != nil {
			return err
		}
		if len(s) == 0 {
			return illegal("ASC of an empty string")
		}
		return &object.Number{Value: float64(s[0])}
	}},

	"ATN": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("ATN", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Atan(v)}
	}},

	"CDBL": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("CDBL", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: v}
	}},

	"CHR$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("CHR$", args)
		if err != nil {
			return err
		}
		code := int(v)
		if (code < 0) || (code > 255) {
			return illegal(fmt.Sprintf("CHR$ code %d out of range", code))
		}
		return &object.String{Value: string(rune(code))}
	}},

	"CINT": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("CINT", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: roundHalfAway(v)}
	}},

	"COS": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("COS", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Cos(v)}
	}},

	"CSNG": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("CSNG", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: singlePrecision(v)}
	}},

	"EXP": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("EXP", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Exp(v)}
	}},

	"FIX": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("FIX", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Trunc(v)}
	}},

	"HEX$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("HEX$", args)
		if err != nil {
			return err
		}
		return &object.String{Value: strings.ToUpper(strconv.FormatInt(int64(math.Floor(v)), 16))}
	}},

	"INSTR": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if len(args) != 2 {
			return illegal("INSTR expects 2 arguments")
		}
		hay, ok := args[0].(*object.String)
		if !ok {
			return typeMismatch("function INSTR expects string arguments")
		}
		needle, ok := args[1].(*object.String)
		if !ok {
			return typeMismatch("function INSTR expects string arguments")
		}

		// one based position, zero when absent
		return &object.Number{Value: float64(strings.Index(hay.Value, needle.Value) + 1)}
	}},

	"INT": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("INT", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Floor(v)}
	}},

	"LCASE$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		s, err := oneStrArg("LCASE$", args)
		if err != nil {
			return err
		}
		return &object.String{Value: strings.ToLower(s)}
	}},

	"LEFT$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if len(args) != 2 {
			return illegal("LEFT$ expects 2 arguments")
		}
		s, ok := args[0].(*object.String)
		if !ok {
			return typeMismatch("function LEFT$ expects a string argument")
		}
		n, err := numVal("LEFT$", args[1])
		if err != nil {
			return err
		}
		cnt := int(n)
		if cnt < 0 {
			return illegal("LEFT$ count is negative")
		}
		if cnt > len(s.Value) {
			cnt = len(s.Value)
		}
		return &object.String{Value: s.Value[:cnt]}
	}},

	"LEN": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		s, err := oneStrArg("LEN", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: float64(len(s))}
	}},

	"LOG": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("LOG", args)
		if err != nil {
			return err
		}
		if v <= 0 {
			return illegal("LOG of a non-positive number")
		}
		return &object.Number{Value: math.Log(v)}
	}},

	"MID$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if (len(args) != 2) && (len(args) != 3) {
			return illegal("MID$ expects 2 or 3 arguments")
		}
		s, ok := args[0].(*object.String)
		if !ok {
			return typeMismatch("function MID$ expects a string argument")
		}
		start, err := numVal("MID$", args[1])
		if err != nil {
			return err
		}
		if start < 1 {
			return illegal("MID$ start before the string")
		}

		from := int(start) - 1
		if from >= len(s.Value) {
			return &object.String{Value: ""}
		}

		rest := s.Value[from:]
		if len(args) == 3 {
			cnt, err := numVal("MID$", args[2])
			if err != nil {
				return err
			}
			if cnt < 0 {
				return illegal("MID$ count is negative")
			}
			if int(cnt) < len(rest) {
				rest = rest[:int(cnt)]
			}
		}
		return &object.String{Value: rest}
	}},

	"OCT$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("OCT$", args)
		if err != nil {
			return err
		}
		return &object.String{Value: strconv.FormatInt(int64(math.Floor(v)), 8)}
	}},

	"RIGHT$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if len(args) != 2 {
			return illegal("RIGHT$ expects 2 arguments")
		}
		s, ok := args[0].(*object.String)
		if !ok {
			return typeMismatch("function RIGHT$ expects a string argument")
		}
		n, err := numVal("RIGHT$", args[1])
		if err != nil {
			return err
		}
		cnt := int(n)
		if cnt < 0 {
			return illegal("RIGHT$ count is negative")
		}
		if cnt > len(s.Value) {
			cnt = len(s.Value)
		}
		return &object.String{Value: s.Value[len(s.Value)-cnt:]}
	}},

	"RND": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if len(args) == 0 {
			return env.Random(1)
		}
		v, err := oneNumArg("RND", args)
		if err != nil {
			return err
		}
		return env.Random(int(v))
	}},

	"SGN": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("SGN", args)
		if err != nil {
			return err
		}
		switch {
		case v > 0:
			return &object.Number{Value: 1}
		case v < 0:
			return &object.Number{Value: -1}
		}
		return &object.Number{Value: 0}
	}},

	"SIN": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("SIN", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Sin(v)}
	}},

	"SPACE$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("SPACE$", args)
		if err != nil {
			return err
		}
		if v < 0 {
			return illegal("SPACE$ count is negative")
		}
		return &object.String{Value: strings.Repeat(" ", int(v))}
	}},

	"SQR": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("SQR", args)
		if err != nil {
			return err
		}
		if v < 0 {
			return illegal("SQR of a negative number")
		}
		return &object.Number{Value: math.Sqrt(v)}
	}},

	"STR$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("STR$", args)
		if err != nil {
			return err
		}

		// non-negative values carry a leading space
		s := object.FormatNumber(v)
		if v >= 0 {
			s = " " + s
		}
		return &object.String{Value: s}
	}},

	"STRING$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		if len(args) != 2 {
			return illegal("STRING$ expects 2 arguments")
		}
		n, err := numVal("STRING$", args[0])
		if err != nil {
			return err
		}
		if n < 0 {
			return illegal("STRING$ count is negative")
		}

		var ch byte
		switch arg := args[1].(type) {
		case *object.String:
			if len(arg.Value) == 0 {
				return illegal("STRING$ of an empty string")
			}
			ch = arg.Value[0]
		case *object.Number:
			code := int(arg.Value)
			if (code < 0) || (code > 255) {
				return illegal(fmt.Sprintf("STRING$ code %d out of range", code))
			}
			ch = byte(code)
		default:
			return typeMismatch("STRING$ expects a string or character code")
		}

		return &object.String{Value: strings.Repeat(string(ch), int(n))}
	}},

	"TAN": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		v, err := oneNumArg("TAN", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: math.Tan(v)}
	}},

	"UCASE$": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		s, err := oneStrArg("UCASE$", args)
		if err != nil {
			return err
		}
		return &object.String{Value: strings.ToUpper(s)}
	}},

	"VAL": {Fn: func(env *object.Environment, fn *object.Builtin, args ...object.Object) object.Object {
		s, err := oneStrArg("VAL", args)
		if err != nil {
			return err
		}
		return &object.Number{Value: numericPrefix(s)}
	}},
}

func illegal(detail string) *object.Error {
	return &object.Error{Code: berrors.IllegalFuncCall, Detail: detail}
}

func typeMismatch(detail string) *object.Error {
	return &object.Error{Code: berrors.TypeMismatch, Detail: detail}
}

// oneNumArg unwraps the single numeric argument most of the
// numeric functions take
func oneNumArg(name string, args []object.Object) (float64, *object.Error) {
	if len(args) != 1 {
		return 0, illegal(fmt.Sprintf("%s expects 1 argument", name))
	}
	return numVal(name, args[0])
}

func numVal(name string, arg object.Object) (float64, *object.Error) {
	n, ok := arg.(*object.Number)
	if !ok {
		return 0, typeMismatch(fmt.Sprintf("function %s expects numeric arguments", name))
	}
	return n.Value, nil
}

func oneStrArg(name string, args []object.Object) (string, *object.Error) {
	if len(args) != 1 {
		return "", illegal(fmt.Sprintf("%s expects 1 argument", name))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		if name == "ASC" {
			return "", illegal("ASC expects a string argument")
		}
		return "", typeMismatch(fmt.Sprintf("function %s expects a string argument", name))
	}
	return s.Value, nil
}

// roundHalfAway rounds halves away from zero, 2.5 becomes 3
// and -2.5 becomes -3
func roundHalfAway(v float64) float64 {
	return math.Trunc(v + math.Copysign(0.5, v))
}

// singlePrecision trims a value to 7 significant digits
func singlePrecision(v float64) float64 {
	if (v == 0) || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'e', 6, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// numericPrefix parses the leading numeric portion of a string,
// unparseable input yields zero
func numericPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t")

	i := 0
	if (i < len(s)) && ((s[i] == '+') || (s[i] == '-')) {
		i++
	}
	sawDigit := false
	for (i < len(s)) && isDigit(s[i]) {
		i++
		sawDigit = true
	}
	if (i < len(s)) && (s[i] == '.') {
		i++
		for (i < len(s)) && isDigit(s[i]) {
			i++
			sawDigit = true
		}
	}
	if sawDigit && (i < len(s)) && ((s[i] == 'e') || (s[i] == 'E')) {
		j := i + 1
		if (j < len(s)) && ((s[j] == '+') || (s[j] == '-')) {
			j++
		}
		if (j < len(s)) && isDigit(s[j]) {
			for (j < len(s)) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	if !sawDigit {
		return 0
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
