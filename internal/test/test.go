package test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ava12/combi"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

// ExpectFailure checks that e is *combi.Failure with expected code and returns it.
func ExpectFailure(t *testing.T, expected int, e error) *combi.Failure {
	t.Helper()
	if e != nil {
		f, valid := e.(*combi.Failure)
		if valid && f.Code == expected {
			return f
		}
	}

	fatalf(t, "expecting failure code %d, got %v", expected, e)
	return nil
}

// ExpectMessages checks that e is *combi.Failure with exactly expected messages.
func ExpectMessages(t *testing.T, expected []string, e error) {
	t.Helper()
	f, valid := e.(*combi.Failure)
	if !valid {
		fatalf(t, "expecting failure %q, got %v", expected, e)
		return
	}

	if diff := cmp.Diff(expected, f.Messages, cmpopts.EquateEmpty()); diff != "" {
		fatalf(t, "failure messages mismatch (-want +got):\n%s", diff)
	}
}
