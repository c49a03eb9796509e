package afed_test

import (
	"testing"

	"github.com/TannerReese/afed"
)

func TestNamespaceDefineAndEval(t *testing.T) {
	ns := afed.NewNamespace(false)
	if _, _, err := ns.Define("x: 4 + 5"); err != nil {
		t.Fatal(err)
	}
	v, ok := ns.Get("x")
	if !ok {
		t.Fatal("expected x to exist")
	}
	val, err := afed.VarValue(v)
	if err != nil || !val.Equal(afed.Int(9)) {
		t.Fatalf("x = (%s, %v), want 9", val, err)
	}
}

func TestNamespaceForwardDeclaration(t *testing.T) {
	ns := afed.NewNamespace(false)
	if _, _, err := ns.Define("area: width * height"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ns.Define("width: 3"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ns.Define("height: 4"); err != nil {
		t.Fatal(err)
	}
	area, _ := ns.Get("area")
	v, err := afed.VarValue(area)
	if err != nil || !v.Equal(afed.Int(12)) {
		t.Fatalf("area = (%s, %v), want 12", v, err)
	}
}

func TestNamespaceRedefinition(t *testing.T) {
	ns := afed.NewNamespace(false)
	if _, _, err := ns.Define("x: 1"); err != nil {
		t.Fatal(err)
	}
	_, _, err := ns.Define("x: 2")
	if err == nil {
		t.Fatal("expected a redefinition error")
	}
	ie, ok := err.(afed.InputError)
	if !ok || ie.Code() != afed.ErrRedef {
		t.Fatalf("got %v, want RedefError", err)
	}
	// The original definition survives untouched.
	v, _ := ns.Get("x")
	val, _ := afed.VarValue(v)
	if !val.Equal(afed.Int(1)) {
		t.Errorf("x should remain 1 after failed redefinition, got %s", val)
	}
}

func TestNamespaceArityMismatch(t *testing.T) {
	ns := afed.NewNamespace(false)
	if _, _, err := ns.Define("caller: callee(1, 2)"); err != nil {
		t.Fatal(err)
	}
	_, _, err := ns.Define("callee(a): a")
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	ie, ok := err.(afed.InputError)
	if !ok || ie.Code() != afed.ErrArityMismatch {
		t.Fatalf("got %v, want ArityMismatchError", err)
	}
}

// TestNamespaceCircularDependencyChain reproduces the six-variable cycle
// scenario: xruje depends on _5_ (forward-declared), __er34 depends on
// xruje, HEllo depends on __er34, __23 depends on HEllo, and finally
// _5_ is defined last, depending on __23 and closing the loop back to
// itself.
func TestNamespaceCircularDependencyChain(t *testing.T) {
	ns := afed.NewNamespace(false)
	defs := []string{
		"xruje: _5_",
		"__er34: xruje",
		"HEllo: __er34",
		"__23: HEllo",
	}
	for _, d := range defs {
		if _, _, err := ns.Define(d); err != nil {
			t.Fatalf("defining %q: %v", d, err)
		}
	}
	_, _, err := ns.Define("_5_: __23")
	if err == nil {
		t.Fatal("expected a circular dependency error")
	}
	ce, ok := err.(*afed.CircularDependencyError)
	if !ok {
		t.Fatalf("got %v (%T), want *CircularDependencyError", err, err)
	}
	want := "_5_ <- xruje <- __er34 <- HEllo <- __23 <- _5_"
	got := ""
	for i, n := range ce.Chain {
		if i > 0 {
			got += " <- "
		}
		got += n
	}
	if got != want {
		t.Errorf("chain = %q, want %q", got, want)
	}
}

func TestNamespaceSelfDependency(t *testing.T) {
	ns := afed.NewNamespace(false)
	_, _, err := ns.Define("x: x + 1")
	if err == nil {
		t.Fatal("expected a circular dependency error for direct self-reference")
	}
	ce, ok := err.(*afed.CircularDependencyError)
	if !ok {
		t.Fatalf("got %v (%T), want *CircularDependencyError", err, err)
	}
	if len(ce.Chain) != 2 || ce.Chain[0] != "x" || ce.Chain[1] != "x" {
		t.Errorf("chain = %v, want [x x]", ce.Chain)
	}
}

func TestNamespaceEvalOnParseEquivalence(t *testing.T) {
	eager := afed.NewNamespace(true)
	lazy := afed.NewNamespace(false)
	for _, ns := range []*afed.Namespace{eager, lazy} {
		if _, _, err := ns.Define("x: 2 + 3 * 4"); err != nil {
			t.Fatal(err)
		}
	}
	ev, _ := eager.Get("x")
	lv, _ := lazy.Get("x")
	a, aerr := afed.VarValue(ev)
	b, berr := afed.VarValue(lv)
	if aerr != nil || berr != nil {
		t.Fatalf("errors: %v, %v", aerr, berr)
	}
	if !a.Equal(b) {
		t.Errorf("eval-on-parse and lazy evaluation disagree: %s vs %s", a, b)
	}
}
