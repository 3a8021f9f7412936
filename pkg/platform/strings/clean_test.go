package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"empty stays empty", []string{}, []string{}},
		{"trims and drops blanks", []string{" kafka-1:9092", "", "  ", "kafka-2:9092 "}, []string{"kafka-1:9092", "kafka-2:9092"}},
		{"first occurrence wins", []string{"b", "a", "b", " a"}, []string{"b", "a"}},
		{"case is preserved", []string{"IE", "ie"}, []string{"IE", "ie"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanFold(t *testing.T) {
	assert.Equal(t, []string{"ie", "cyprus"}, CleanFold([]string{" IE", "Cyprus", "ie ", "CYPRUS", ""}))
}

func TestCleanDoesNotAliasInput(t *testing.T) {
	in := []string{" a", "a", "b"}
	_ = Clean(in)
	assert.Equal(t, []string{" a", "a", "b"}, in)
}
