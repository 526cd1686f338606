//go:build !integration

package constraint

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestString_Check(t *testing.T) {
	tests := []struct {
		name        string
		rules       String
		value       string
		wantKeyword string
	}{
		{name: "no rules", rules: String{}, value: "anything"},
		{name: "const match", rules: String{Const: ptr("abc")}, value: "abc"},
		{name: "const mismatch", rules: String{Const: ptr("abc")}, value: "abd", wantKeyword: "const"},
		{name: "empty const is a rule", rules: String{Const: ptr("")}, value: "x", wantKeyword: "const"},
		{name: "enum member", rules: String{Enum: []string{"a", "b"}}, value: "b"},
		{name: "enum non-member", rules: String{Enum: []string{"a", "b"}}, value: "c", wantKeyword: "enum"},
		{name: "empty enum is ignored", rules: String{Enum: []string{}}, value: "c"},
		{name: "below minLength", rules: String{MinLength: ptr(3)}, value: "ab", wantKeyword: "minLength"},
		{name: "at minLength", rules: String{MinLength: ptr(3)}, value: "abc"},
		{name: "above maxLength", rules: String{MaxLength: ptr(3)}, value: "abcd", wantKeyword: "maxLength"},
		{name: "exact length bounds", rules: String{MinLength: ptr(3), MaxLength: ptr(3)}, value: "abc"},
		{name: "length counts code points", rules: String{MaxLength: ptr(2)}, value: "é😀"},
		{name: "pattern match", rules: String{Pattern: ptr("^[a-z]+$")}, value: "abc"},
		{name: "pattern is unanchored", rules: String{Pattern: ptr("b")}, value: "abc"},
		{name: "pattern mismatch", rules: String{Pattern: ptr("^[a-z]+$")}, value: "ab1", wantKeyword: "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := tt.rules.Check(tt.value)
			require.NoError(t, err)
			if tt.wantKeyword == "" {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantKeyword, violations[0].Keyword)
			assert.NotEmpty(t, violations[0].Message)
			assert.Equal(t, violations[0].Message, violations[0].String())
		})
	}
}

func TestString_CheckReportsEveryViolation(t *testing.T) {
	rules := String{MinLength: ptr(3), Pattern: ptr("^z")}
	violations, err := rules.Check("ab")
	require.NoError(t, err)
	require.Len(t, violations, 2)

	keywords := []string{violations[0].Keyword, violations[1].Keyword}
	assert.ElementsMatch(t, []string{"minLength", "pattern"}, keywords)
}

func TestString_InvalidRules(t *testing.T) {
	_, err := String{Pattern: ptr("([a-z")}.Check("abc")
	require.ErrorIs(t, err, ErrInvalidConstraint)

	_, err = String{MinLength: ptr(-1)}.Check("abc")
	require.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestString_Empty(t *testing.T) {
	assert.True(t, String{}.Empty())
	assert.True(t, String{Enum: []string{}}.Empty())
	assert.False(t, String{MinLength: ptr(0)}.Empty(), "a zero length is still a rule")
}

func TestNumber_Check(t *testing.T) {
	tests := []struct {
		name        string
		rules       Number
		value       float64
		wantKeyword string
	}{
		{name: "no rules", rules: Number{}, value: 12},
		{name: "inside range", rules: Number{Minimum: ptr(5.0), Maximum: ptr(10.0)}, value: 7},
		{name: "at minimum", rules: Number{Minimum: ptr(5.0)}, value: 5},
		{name: "below minimum", rules: Number{Minimum: ptr(5.0), Maximum: ptr(10.0)}, value: 4, wantKeyword: "minimum"},
		{name: "above maximum", rules: Number{Minimum: ptr(5.0), Maximum: ptr(10.0)}, value: 12, wantKeyword: "maximum"},
		{name: "at exclusive minimum", rules: Number{ExclusiveMinimum: ptr(5.0)}, value: 5, wantKeyword: "exclusiveMinimum"},
		{name: "above exclusive minimum", rules: Number{ExclusiveMinimum: ptr(5.0)}, value: 5.5},
		{name: "at exclusive maximum", rules: Number{ExclusiveMaximum: ptr(10.0)}, value: 10, wantKeyword: "exclusiveMaximum"},
		{name: "multiple of", rules: Number{MultipleOf: ptr(3.0)}, value: 9},
		{name: "not multiple of", rules: Number{MultipleOf: ptr(3.0)}, value: 10, wantKeyword: "multipleOf"},
		{name: "decimal multiple of", rules: Number{MultipleOf: ptr(0.1)}, value: 0.3},
		{name: "const match", rules: Number{Const: ptr(0.0)}, value: 0},
		{name: "const mismatch", rules: Number{Const: ptr(0.0)}, value: 1, wantKeyword: "const"},
		{name: "enum member", rules: Number{Enum: []float64{1, 2, 3}}, value: 2},
		{name: "enum non-member", rules: Number{Enum: []float64{1, 2, 3}}, value: 4, wantKeyword: "enum"},
		{name: "negative range", rules: Number{Minimum: ptr(-10.0), Maximum: ptr(-5.0)}, value: -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := tt.rules.Check(tt.value)
			require.NoError(t, err)
			if tt.wantKeyword == "" {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantKeyword, violations[0].Keyword)
			assert.NotEmpty(t, violations[0].Message)
		})
	}
}

func TestNumber_NonFinite(t *testing.T) {
	t.Run("NaN skips range rules", func(t *testing.T) {
		violations, err := Number{Minimum: ptr(5.0), MultipleOf: ptr(2.0)}.Check(math.NaN())
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("NaN never equals a constant", func(t *testing.T) {
		violations, err := Number{Const: ptr(5.0)}.Check(math.NaN())
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "const", violations[0].Keyword)
		assert.Equal(t, "value must be 5", violations[0].Message)
	})

	t.Run("NaN is never an enum member", func(t *testing.T) {
		violations, err := Number{Enum: []float64{1, 2.5}}.Check(math.NaN())
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "value must be one of 1, 2.5", violations[0].Message)
	})

	t.Run("Infinity skips maximum", func(t *testing.T) {
		violations, err := Number{Maximum: ptr(10.0)}.Check(math.Inf(1))
		require.NoError(t, err)
		assert.Empty(t, violations)
	})
}

func TestNumber_InvalidRules(t *testing.T) {
	_, err := Number{MultipleOf: ptr(0.0)}.Check(4)
	require.ErrorIs(t, err, ErrInvalidConstraint)

	_, err = Number{MultipleOf: ptr(-2.0)}.Check(math.NaN())
	require.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestArray_Check(t *testing.T) {
	tests := []struct {
		name        string
		rules       Array
		value       []string
		wantKeyword string
	}{
		{name: "no rules", rules: Array{}, value: []string{"a", "a"}},
		{name: "unique", rules: Array{UniqueItems: true}, value: []string{"a", "b"}},
		{name: "duplicate", rules: Array{UniqueItems: true}, value: []string{"a", "a"}, wantKeyword: "uniqueItems"},
		{name: "too few", rules: Array{MinItems: ptr(2)}, value: []string{"a"}, wantKeyword: "minItems"},
		{name: "too many", rules: Array{MaxItems: ptr(1)}, value: []string{"a", "b"}, wantKeyword: "maxItems"},
		{name: "empty within bounds", rules: Array{MinItems: ptr(0), MaxItems: ptr(2)}, value: []string{}},
		{name: "nil slice counts as empty", rules: Array{MinItems: ptr(1)}, value: nil, wantKeyword: "minItems"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations, err := tt.rules.Check(tt.value)
			require.NoError(t, err)
			if tt.wantKeyword == "" {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantKeyword, violations[0].Keyword)
		})
	}
}

func TestArray_InvalidRules(t *testing.T) {
	_, err := Array{MaxItems: ptr(-1)}.Check([]string{"a"})
	require.ErrorIs(t, err, ErrInvalidConstraint)
}

func TestCompile_CachesSchemas(t *testing.T) {
	rules := String{Pattern: ptr("^cache-[0-9]+$")}
	doc := rules.document()

	first, err := compile("string", doc)
	require.NoError(t, err)
	second, err := compile("string", rules.document())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCheck_Concurrent(t *testing.T) {
	rules := Number{Minimum: ptr(5.0), Maximum: ptr(10.0)}
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			violations, err := rules.Check(v)
			assert.NoError(t, err)
			assert.Equal(t, v < 5 || v > 10, len(violations) > 0, "value %v", v)
		}(float64(i))
	}
	wg.Wait()
}
