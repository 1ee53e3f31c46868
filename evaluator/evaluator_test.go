package evaluator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrolang/basic/berrors"
	"github.com/retrolang/basic/mocks"
)

func runProgram(t *testing.T, src string) *mocks.MockTerm {
	t.Helper()

	term := &mocks.MockTerm{}
	in := New(term)
	if err := in.Execute(src); err != nil {
		t.Fatalf("program %q failed: %v", src, err)
	}
	return term
}

func runWithInput(t *testing.T, src string, input []string) *mocks.MockTerm {
	t.Helper()

	term := &mocks.MockTerm{Input: input}
	in := New(term)
	if err := in.Execute(src); err != nil {
		t.Fatalf("program %q failed: %v", src, err)
	}
	return term
}

func runError(t *testing.T, src string) *berrors.RuntimeError {
	t.Helper()

	term := &mocks.MockTerm{}
	in := New(term)
	err := in.Execute(src)
	if err == nil {
		t.Fatalf("program %q should have failed", src)
	}
	re, ok := err.(*berrors.RuntimeError)
	if !ok {
		t.Fatalf("program %q failed with %T, expected a RuntimeError: %v", src, err, err)
	}
	return re
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"PRINT 1 + 2 * 3", "7"},
		{"PRINT (1 + 2) * 3", "9"},
		{"PRINT 10 - 4 - 3", "3"},
		{`PRINT "x=" + 5`, "x=5"},
		{`PRINT 5 + "x"`, "5x"},
		{`PRINT "a" + "b"`, "ab"},
		{"PRINT -5 + 3", "-2"},
		{"PRINT 1/0", "+Inf"},
		{"PRINT (0 - 1)/0", "+Inf"},
		{"PRINT 7/2", "3.5"},
		{"PRINT 3 > 2", "-1"},
		{"PRINT 3 < 2", "0"},
		{"PRINT 3 <> 2", "-1"},
		{`PRINT "abc" < "abd"`, "-1"},
		{`PRINT 5 = "5"`, "-1"},
		{`PRINT 5 <> "5"`, "0"},
		{"PRINT NOT 0", "-1"},
		{"PRINT NOT 3", "0"},
		{"PRINT 1 AND 2", "-1"},
		{"PRINT 1 AND 0", "0"},
		{"PRINT 0 OR 3", "-1"},
		{"PRINT 0 OR 0", "0"},
		{"PRINT NOT 1 > 2", "-1"},
		{`PRINT "" OR 0`, "0"},
		{`PRINT "x" AND 1`, "-1"},
		{"PRINT", ""},
		{`PRINT "a"; "b"`, "ab"},
		{`PRINT "a", "b"`, "a b"},
		{"PRINT CINT(2.5)", "3"},
		{"PRINT CINT(-2.5)", "-3"},
		{"PRINT SQR(9) + 1", "4"},
		{`PRINT STR$(3)`, " 3"},
		{"PRINT 12345678", "1.2345678e+07"},
	}

	for _, tt := range tests {
		term := runProgram(t, tt.src)

		if assert.Len(t, term.Output, 1, "program %q", tt.src) {
			assert.Equal(t, tt.want, term.Output[0], "program %q", tt.src)
		}
	}
}

func TestForLoop(t *testing.T) {
	term := runProgram(t, "FOR i = 1 TO 3: PRINT i: NEXT i")
	assert.Equal(t, []string{"1", "2", "3"}, term.Output)
}

// iteration count is max(0, floor((b-a)/s) + 1) when the step
// points at the bound
func TestForIterationCounts(t *testing.T) {
	tests := []struct {
		a, b, s float64
		want    string
	}{
		{1, 10, 2, "5"},
		{1, 10, 3, "4"},
		{1, 3, 1, "3"},
		{3, 1, -1, "3"},
		{5, 5, 1, "1"},
		{1, 0, 1, "0"},
		{0, 1, -1, "0"},
	}

	for _, tt := range tests {
		src := fmt.Sprintf("n = 0\nFOR i = %g TO %g STEP %g\nn = n + 1\nNEXT i\nPRINT n", tt.a, tt.b, tt.s)
		term := runProgram(t, src)

		assert.Equal(t, tt.want, term.Output[0], "FOR %g TO %g STEP %g", tt.a, tt.b, tt.s)
	}
}

func TestForVariableAfterLoop(t *testing.T) {
	term := runProgram(t, "FOR i = 1 TO 3: NEXT i\nPRINT i")
	assert.Equal(t, []string{"4"}, term.Output)
}

func TestForBodyMovesLoopVariable(t *testing.T) {
	term := runProgram(t, "FOR i = 1 TO 10\ni = i + 1\nPRINT i\nNEXT i")
	assert.Equal(t, []string{"2", "4", "6", "8", "10"}, term.Output)
}

func TestWhileLoop(t *testing.T) {
	term := runProgram(t, "x = 0\nWHILE x < 3\nx = x + 1\nWEND\nPRINT x")
	assert.Equal(t, []string{"3"}, term.Output)
}

func TestWhileNeverRuns(t *testing.T) {
	term := runProgram(t, `WHILE 0: PRINT "never": WEND`)
	assert.Empty(t, term.Output)
}

func TestIfStatements(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{`IF 2 > 1 THEN PRINT "yes" ELSE PRINT "no"`, []string{"yes"}},
		{`IF 1 > 2 THEN PRINT "yes" ELSE PRINT "no"`, []string{"no"}},
		{`IF 1 > 2 THEN PRINT "yes"`, nil},
		{"IF 2 > 1 THEN\nPRINT \"a\"\nPRINT \"b\"\nELSE\nPRINT \"c\"\nEND IF", []string{"a", "b"}},
		{"IF 1 > 2 THEN\nPRINT \"a\"\nELSE\nPRINT \"c\"\nEND IF", []string{"c"}},
	}

	for _, tt := range tests {
		term := runProgram(t, tt.src)
		assert.Equal(t, tt.want, term.Output, "program %q", tt.src)
	}
}

func TestGotoSkipsForward(t *testing.T) {
	term := runProgram(t, `start: PRINT "a": GOTO done: PRINT "b": done: PRINT "c"`)
	assert.Equal(t, []string{"a", "c"}, term.Output)
}

func TestGotoBackward(t *testing.T) {
	src := `x = 0
top: x = x + 1
IF x < 3 THEN GOTO top
PRINT x`
	term := runProgram(t, src)
	assert.Equal(t, []string{"3"}, term.Output)
}

func TestGotoOutOfLoop(t *testing.T) {
	src := `FOR i = 1 TO 100
IF i = 3 THEN GOTO out
PRINT i
NEXT i
out: PRINT "done"`
	term := runProgram(t, src)
	assert.Equal(t, []string{"1", "2", "done"}, term.Output)
}

func TestGotoUndefinedLabel(t *testing.T) {
	re := runError(t, "GOTO nowhere")
	assert.Equal(t, berrors.UndefinedLabel, re.Code)
}

func TestDuplicateLabels(t *testing.T) {
	re := runError(t, "here: PRINT 1\nhere: PRINT 2")
	assert.Equal(t, berrors.DuplicateDefinition, re.Code)
}

func TestDimDefaults(t *testing.T) {
	term := runProgram(t, "DIM a(3) AS INTEGER\nPRINT a(0); a(2)")
	assert.Equal(t, []string{"00"}, term.Output)

	term = runProgram(t, "DIM s(2) AS STRING\nPRINT \"[\" + s(1) + \"]\"")
	assert.Equal(t, []string{"[]"}, term.Output)

	term = runProgram(t, "DIM x AS DOUBLE\nPRINT x")
	assert.Equal(t, []string{"0"}, term.Output)
}

func TestArrayStoreAndRead(t *testing.T) {
	term := runProgram(t, "DIM a(3)\na(1) = 42\nPRINT a(1)")
	assert.Equal(t, []string{"42"}, term.Output)

	// subscripts floor to an integer
	term = runProgram(t, "DIM a(3)\na(1.7) = 9\nPRINT a(1)")
	assert.Equal(t, []string{"9"}, term.Output)
}

func TestArrayBounds(t *testing.T) {
	re := runError(t, "DIM a(3) AS INTEGER\nLET a(5) = 1")
	assert.Equal(t, berrors.SubscriptRange, re.Code)

	re = runError(t, "DIM a(3)\nPRINT a(0 - 1)")
	assert.Equal(t, berrors.SubscriptRange, re.Code)
}

func TestTypeInvariants(t *testing.T) {
	re := runError(t, `DIM x AS INTEGER: LET x = "hi"`)
	assert.Equal(t, berrors.TypeMismatch, re.Code)

	re = runError(t, `DIM s AS STRING: LET s = 5`)
	assert.Equal(t, berrors.TypeMismatch, re.Code)

	re = runError(t, `DIM a(3) AS INTEGER: a(1) = "nope"`)
	assert.Equal(t, berrors.TypeMismatch, re.Code)

	re = runError(t, "DIM x AS INTEGER\nDIM x AS INTEGER")
	assert.Equal(t, berrors.DuplicateDefinition, re.Code)
}

func TestAutoCreatedTypes(t *testing.T) {
	// a plain assignment infers STRING vs SINGLE from the value
	term := runProgram(t, `msg = "hi"
msg = "there"
PRINT msg`)
	assert.Equal(t, []string{"there"}, term.Output)

	re := runError(t, "x = 5\nx = \"hi\"")
	assert.Equal(t, berrors.TypeMismatch, re.Code)
}

func TestUndefinedVariable(t *testing.T) {
	re := runError(t, "PRINT y")
	assert.Equal(t, berrors.UndefinedVariable, re.Code)
}

func TestUndefinedFunction(t *testing.T) {
	re := runError(t, "x = NOSUCH$(1)")
	assert.Equal(t, berrors.UndefinedFunction, re.Code)
}

// AND and OR always evaluate both sides
func TestLogicIsNotShortCircuit(t *testing.T) {
	re := runError(t, "x = 0 AND SQR(0 - 1)")
	assert.Equal(t, berrors.IllegalFuncCall, re.Code)

	re = runError(t, "x = 1 OR SQR(0 - 1)")
	assert.Equal(t, berrors.IllegalFuncCall, re.Code)
}

func TestCrossTypeOrderingFails(t *testing.T) {
	re := runError(t, `x = 5 < "a"`)
	assert.Equal(t, berrors.TypeMismatch, re.Code)
}

func TestInputStatement(t *testing.T) {
	term := runWithInput(t, "INPUT x\nPRINT x * 2", []string{"21"})
	assert.Equal(t, []string{"42"}, term.Output)

	term = runWithInput(t, "INPUT name\nPRINT \"hi \" + name", []string{"zork"})
	assert.Equal(t, []string{"hi zork"}, term.Output)

	// a declared variable keeps its type
	re := runError(t, "DIM x AS INTEGER\nINPUT x")
	assert.Equal(t, berrors.IllegalFuncCall, re.Code)
}

func TestInputTypeEnforced(t *testing.T) {
	term := &mocks.MockTerm{Input: []string{"not a number"}}
	in := New(term)
	err := in.Execute("DIM x AS INTEGER\nINPUT x")

	re, ok := err.(*berrors.RuntimeError)
	if !ok {
		t.Fatalf("got %T, expected a RuntimeError", err)
	}
	assert.Equal(t, berrors.TypeMismatch, re.Code)
}

func TestCls(t *testing.T) {
	term := runProgram(t, "CLS")
	assert.Equal(t, 1, term.ClsCount)
}

func TestRoundTrips(t *testing.T) {
	term := runProgram(t, "PRINT CDBL(1.25) = 1.25")
	assert.Equal(t, []string{"-1"}, term.Output)

	term = runProgram(t, "PRINT CINT(CINT(7.2)) = CINT(7.2)")
	assert.Equal(t, []string{"-1"}, term.Output)

	term = runProgram(t, "PRINT VAL(STR$(42)) = 42")
	assert.Equal(t, []string{"-1"}, term.Output)
}

func TestStatePersistence(t *testing.T) {
	term := &mocks.MockTerm{}
	in := New(term)

	assert.NoError(t, in.Execute("x = 5"))
	assert.NoError(t, in.ExecuteKeep("PRINT x"))
	assert.Equal(t, []string{"5"}, term.Output)

	// a fresh Execute starts from a clean slate
	err := in.Execute("PRINT x")
	re, ok := err.(*berrors.RuntimeError)
	if !ok {
		t.Fatalf("got %T, expected a RuntimeError", err)
	}
	assert.Equal(t, berrors.UndefinedVariable, re.Code)
}

func TestSyntaxErrorsSurface(t *testing.T) {
	term := &mocks.MockTerm{}
	in := New(term)

	err := in.Execute("FOR i = 1 TO 3: NEXT j")
	assert.Error(t, err)

	_, ok := err.(*berrors.SyntaxError)
	assert.True(t, ok, "got %T, expected a SyntaxError", err)
}

func TestLexErrorsSurface(t *testing.T) {
	term := &mocks.MockTerm{}
	in := New(term)

	err := in.Execute("x = 1.2.3")
	assert.Error(t, err)

	_, ok := err.(*berrors.LexError)
	assert.True(t, ok, "got %T, expected a LexError", err)
}
