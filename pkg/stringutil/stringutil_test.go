//go:build !integration

package stringutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxLen   int
		expected string
	}{
		{name: "string shorter than max length", s: "hello", maxLen: 10, expected: "hello"},
		{name: "string equal to max length", s: "hello", maxLen: 5, expected: "hello"},
		{name: "string longer than max length", s: "hello world", maxLen: 8, expected: "hello..."},
		{name: "max length 3", s: "hello", maxLen: 3, expected: "hel"},
		{name: "max length 1", s: "hello", maxLen: 1, expected: "h"},
		{name: "zero", s: "hello", maxLen: 0, expected: ""},
		{name: "negative", s: "hello", maxLen: -1, expected: ""},
		{name: "empty string", s: "", maxLen: 5, expected: ""},
		{name: "four of five", s: "abcde", maxLen: 4, expected: "a..."},
		{name: "runes are not split", s: "héllo wörld", maxLen: 8, expected: "héllo..."},
		{name: "emoji", s: "ab👋cd👋ef", maxLen: 6, expected: "ab👋..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.s, tt.maxLen))
		})
	}
}
