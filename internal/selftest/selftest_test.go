package selftest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_AllPass(t *testing.T) {
	var out, errOut bytes.Buffer

	failures := Run(&out, &errOut, Cases())

	assert.Zero(t, failures)
	assert.Equal(t, "Number of test failures: 0 :)\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestRun_ReportsFailureLocationAndCase(t *testing.T) {
	var out, errOut bytes.Buffer
	cases := []Case{
		{"passes", func(t *Tester) { t.Check(true) }},
		{"always fails", func(t *Tester) {
			t.Check(true)
			t.Check(false)
		}},
	}

	failures := Run(&out, &errOut, cases)

	assert.Equal(t, 1, failures)
	assert.Contains(t, errOut.String(), "Test failed at selftest_test.go:")
	assert.Contains(t, errOut.String(), "(always fails)")
	assert.NotContains(t, errOut.String(), "(passes)")
	assert.Equal(t, "Number of test failures: 1 :(\n", out.String())
}

func TestTester_CheckOutsideRun(t *testing.T) {
	var errOut bytes.Buffer
	tester := NewTester(&errOut)

	tester.Check(false)

	assert.Equal(t, 1, tester.Failures())
	assert.Contains(t, errOut.String(), "Test failed at selftest_test.go:")
	assert.NotContains(t, errOut.String(), "(")
}
