package vm

import (
	"bytes"
	"strings"
	"testing"

	"loxvm/internal/source"
)

// run interprets src in a fresh VM and returns its captured stdout, stderr,
// and the Result.
func run(t *testing.T, src string) (string, string, Result) {
	t.Helper()
	v := New()
	var out, errOut bytes.Buffer
	v.Stdout = &out
	v.Stderr = &errOut

	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(src))
	result := v.Interpret(fs, id)
	return out.String(), errOut.String(), result
}

func TestArithmeticAndPrint(t *testing.T) {
	out, _, result := run(t, `print 1 + 2 * 3;`)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestStringConcatenation(t *testing.T) {
	out, _, result := run(t, `print "foo" + "bar";`)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "foobar\n" {
		t.Fatalf("got %q", out)
	}
}

func TestGlobalAndLocalVariables(t *testing.T) {
	src := `
var a = 1;
{
  var a = 2;
  print a;
}
print a;
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "2\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestControlFlow(t *testing.T) {
	src := `
var i = 0;
var sum = 0;
while (i < 5) {
  sum = sum + i;
  i = i + 1;
}
print sum;
if (sum == 10) {
  print "ten";
} else {
  print "not ten";
}
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "10\nten\n" {
		t.Fatalf("got %q", out)
	}
}

func TestForLoop(t *testing.T) {
	src := `
var total = 0;
for (var i = 0; i < 4; i = i + 1) {
  total = total + i;
}
print total;
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "6\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionsAndRecursion(t *testing.T) {
	src := `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosures(t *testing.T) {
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
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "1\n2\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClassesMethodsAndThis(t *testing.T) {
	src := `
class Counter {
  init() {
    this.value = 0;
  }
  bump() {
    this.value = this.value + 1;
    return this.value;
  }
}
var c = Counter();
c.bump();
print c.bump();
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	src := `
class Animal {
  speak() {
    return "...";
  }
}
class Dog < Animal {
  speak() {
    return "Woof, " + super.speak();
  }
}
print Dog().speak();
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "Woof, ...\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringEqualityIsByValueViaInterning(t *testing.T) {
	src := `
var a = "hi" + "!";
var b = "hi!";
print a == b;
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "true\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRuntimeErrorUnwindsAndReportsStackTrace(t *testing.T) {
	src := `
fun a() {
  return 1 + "two";
}
fun b() {
  return a();
}
b();
`
	_, errOut, result := run(t, src)
	if result != ResultRuntimeError {
		t.Fatalf("result = %v, want ResultRuntimeError", result)
	}
	if !strings.Contains(errOut, "[line 3] in a") {
		t.Fatalf("stack trace missing innermost frame: %q", errOut)
	}
	if !strings.Contains(errOut, "[line 6] in b") {
		t.Fatalf("stack trace missing caller frame: %q", errOut)
	}
	if !strings.Contains(errOut, "[line 8] in script") {
		t.Fatalf("stack trace missing script frame: %q", errOut)
	}
}

func TestCompileErrorReportsLineAndDoesNotRun(t *testing.T) {
	src := `
print 1;
print );
`
	out, errOut, result := run(t, src)
	if result != ResultCompileError {
		t.Fatalf("result = %v, want ResultCompileError", result)
	}
	if out != "" {
		t.Fatalf("expected no output for a program that failed to compile, got %q", out)
	}
	if !strings.Contains(errOut, "[line 3]") {
		t.Fatalf("expected error location, got %q", errOut)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `print nope;`)
	if result != ResultRuntimeError {
		t.Fatalf("result = %v, want ResultRuntimeError", result)
	}
	if !strings.Contains(errOut, "Undefined variable") {
		t.Fatalf("got %q", errOut)
	}
}

func TestClockNativeReturnsNumber(t *testing.T) {
	out, _, result := run(t, `print type(clock());`)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "number\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStrNativeMirrorsPrintFormatting(t *testing.T) {
	out, _, result := run(t, `print str(1) + str(true) + str(nil);`)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	if out != "1truenil\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTypeNativeReturnsInternedName(t *testing.T) {
	src := `
var a = type(1);
var b = type(2);
print a == b;
print type("x");
print type(nil);
print type(false);
`
	out, _, result := run(t, src)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK", result)
	}
	want := "true\nstring\nnil\nboolean\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestGCStressDoesNotCorruptLiveState(t *testing.T) {
	v := New()
	v.GC().Stress = true
	var out bytes.Buffer
	v.Stdout = &out
	v.Stderr = &out

	src := `
fun makeList(n) {
  var s = "";
  var i = 0;
  while (i < n) {
    s = s + "x";
    i = i + 1;
  }
  return s;
}
print makeList(50);
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte(src))
	result := v.Interpret(fs, id)
	if result != ResultOK {
		t.Fatalf("result = %v, want ResultOK, output %q", result, out.String())
	}
	want := strings.Repeat("x", 50) + "\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}
