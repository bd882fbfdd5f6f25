package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loxscript/golox/internal/driver"
)

// run executes src through the full pipeline and returns everything
// written to stdout plus the reporter's error flags.
func run(src string) (stdout string, hadError, hadRuntimeError bool) {
	var buf bytes.Buffer
	d := driver.New(&buf, false)
	d.Run(src)
	return buf.String(), d.Reporter.HadError, d.Reporter.HadRuntimeError
}

func TestPrintArithmeticAndStringConcatenation(t *testing.T) {
	out, hadErr, hadRT := run(`print 1 + 2; print "a" + "b"; print 6 / 2 * 3;`)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	want := "3\nab\n9\n"
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestClosureCounter(t *testing.T) {
	src := `
	fun makeCounter() {
		var count = 0;
		fun increment() {
			count = count + 1;
			return count;
		}
		return increment;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	want := "1\n2\n3\n"
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestClosureBindsDeclarationSiteScope(t *testing.T) {
	// The classic jlox regression: showA always prints the global `a`
	// because, when showA is declared, the block has no `a` yet; the
	// resolver records no local distance for it, so the evaluator reads the
	// global rather than whatever shadow exists by the time showA runs.
	src := `
	var a = "global";
	{
		fun showA() {
			print a;
		}
		showA();
		var a = "block";
		showA();
	}
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	want := "global\nglobal\n"
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestClassInitAndMethod(t *testing.T) {
	src := `
	class Counter {
		init(start) {
			this.value = start;
		}
		increment() {
			this.value = this.value + 1;
			return this.value;
		}
	}
	var c = Counter(10);
	print c.increment();
	print c.increment();
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	want := "11\n12\n"
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestInitializerAlwaysReturnsThisRegardlessOfBareReturn(t *testing.T) {
	src := `
	class Thing {
		init() {
			return;
		}
	}
	print Thing();
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	if !strings.Contains(out, "Thing instance") {
		t.Errorf("expected init() to yield the instance, got %q", out)
	}
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	src := `
	fun add(a, b) { return a + b; }
	add(1);
	`
	_, hadErr, hadRT := run(src)
	if hadErr {
		t.Fatalf("expected no syntax error")
	}
	if !hadRT {
		t.Fatal("expected an arity-mismatch runtime error")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, hadErr, hadRT := run(`var x = 1; x();`)
	if hadErr {
		t.Fatalf("expected no syntax error")
	}
	if !hadRT {
		t.Fatal("expected calling a non-callable to be a runtime error")
	}
}

func TestForLoopDesugaringAndShortCircuitOr(t *testing.T) {
	src := `
	var calls = 0;
	fun sideEffect() {
		calls = calls + 1;
		return true;
	}
	for (var i = 0; i < 3; i = i + 1) {
		if (true or sideEffect()) {
			print i;
		}
	}
	print calls;
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	// `true or sideEffect()` short-circuits: sideEffect is never called.
	want := "0\n1\n2\n0\n"
	if out != want {
		t.Errorf("got %q want %q", out, want)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, hadErr, hadRT := run(`print undefined;`)
	if hadErr {
		t.Fatalf("expected no syntax error")
	}
	if !hadRT {
		t.Fatal("expected reading an undefined variable to be a runtime error")
	}
}

func TestFieldsShadowMethods(t *testing.T) {
	src := `
	class Box {
		value() { return "method"; }
	}
	var b = Box();
	b.value = "field";
	print b.value;
	`
	out, hadErr, hadRT := run(src)
	if hadErr || hadRT {
		t.Fatalf("unexpected error: hadErr=%v hadRT=%v", hadErr, hadRT)
	}
	if out != "field\n" {
		t.Errorf("got %q want %q", out, "field\n")
	}
}

func TestRuntimeErrorStopsExecutionAtStatementBoundary(t *testing.T) {
	src := `
	print "before";
	print 1 + "two";
	print "after";
	`
	out, hadErr, hadRT := run(src)
	if hadErr {
		t.Fatalf("expected no syntax error")
	}
	if !hadRT {
		t.Fatal("expected the mixed-type addition to be a runtime error")
	}
	if !strings.Contains(out, "before") || strings.Contains(out, "after") {
		t.Errorf("expected execution to stop before the trailing print, got %q", out)
	}
}
