package object

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrolang/basic/berrors"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-3, "-3"},
		{3.5, "3.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{9999999, "9999999"},
		{12345678, "1.2345678e+07"},
		{-12345678, "-1.2345678e+07"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%g)", tt.in)
	}
}

func TestDefaultValue(t *testing.T) {
	n, ok := DefaultValue(IntegerType).(*Number)
	if !ok {
		t.Fatalf("INTEGER default is not a Number")
	}
	assert.Zero(t, n.Value)

	s, ok := DefaultValue(StringType).(*String)
	if !ok {
		t.Fatalf("STRING default is not a String")
	}
	assert.Equal(t, "", s.Value)
}

func TestNumericType(t *testing.T) {
	assert.True(t, NumericType(IntegerType))
	assert.True(t, NumericType(SingleType))
	assert.True(t, NumericType(DoubleType))
	assert.False(t, NumericType(StringType))
}

func TestEnvironmentCaseFolding(t *testing.T) {
	env := NewTermEnvironment(nil)

	env.Set("count", &Variable{TypeID: SingleType, Value: &Number{Value: 7}})

	v, ok := env.Get("COUNT")
	if !ok {
		t.Fatalf("variable lookup is case sensitive")
	}
	assert.Equal(t, 7.0, v.Value.(*Number).Value)
}

func TestEnvironmentClear(t *testing.T) {
	env := NewTermEnvironment(nil)
	env.Set("x", &Variable{TypeID: SingleType, Value: &Number{Value: 1}})

	env.Clear()

	_, ok := env.Get("x")
	assert.False(t, ok)
}

func TestRandom(t *testing.T) {
	env := NewTermEnvironment(nil)

	first := env.Random(1).Value
	assert.Equal(t, first, env.Random(0).Value)
	assert.Equal(t, first, env.Random(-5).Value)
	assert.NotEqual(t, first, env.Random(1).Value)
}

func TestRandomize(t *testing.T) {
	a := NewTermEnvironment(nil)
	b := NewTermEnvironment(nil)

	a.Randomize(99)
	b.Randomize(99)

	assert.Equal(t, a.Random(1).Value, b.Random(1).Value)
}

func TestInspect(t *testing.T) {
	arr := &Array{TypeID: IntegerType, Elements: []Object{&Number{Value: 1}, &Number{Value: 2}}}
	assert.Equal(t, "1, 2", arr.Inspect())

	jmp := &Jump{Target: "TOP"}
	assert.Equal(t, "GOTO TOP", jmp.Inspect())

	e := &Error{Code: berrors.SubscriptRange, Detail: "A"}
	assert.Contains(t, e.Inspect(), "Subscript out of range")
}
