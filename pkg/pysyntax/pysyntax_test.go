package pysyntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopyfix/pkg/pysyntax"
)

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"assignment", "x = 1\n", true},
		{"function", "def f(a, b):\n    return a + b\n", true},
		{"crlf terminators", "x = 1\r\ny = 2\r\n", true},
		{"empty", "", true},
		{"broken def header", "def f(:\n    pass\n", false},
		{"unbalanced bracket", "x = (1\n", false},
		{"stray operator", "x = = 1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pysyntax.Valid(tt.code))
		})
	}
}

func TestValid_Concurrent(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				pysyntax.Valid("for i in range(10):\n    print(i)\n")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
