package testutil

import "testing"

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(keyword+" "+desc, fn)
}

// Given names a precondition subtest.
func Given(t *testing.T, desc string, fn func(t *testing.T)) { t.Helper(); step(t, "Given", desc, fn) }

// When names an action subtest.
func When(t *testing.T, desc string, fn func(t *testing.T)) { t.Helper(); step(t, "When", desc, fn) }

// Then names an expectation subtest.
func Then(t *testing.T, desc string, fn func(t *testing.T)) { t.Helper(); step(t, "Then", desc, fn) }
