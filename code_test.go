package afed_test

import (
	"testing"

	"github.com/TannerReese/afed"
)

func TestCodeBlockValue(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(0)
	b.LoadConst(afed.Int(2))
	b.LoadConst(afed.Int(3))
	add := func(a []afed.Scalar) (afed.Scalar, error) { return a[0].Add(a[1]), nil }
	if !b.CallFunc(2, add, false) {
		t.Fatal("CallFunc rejected")
	}
	if !b.Valid() {
		t.Fatal("block should be valid")
	}
	v, err := b.Eval(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(afed.Int(5)) {
		t.Errorf("got %s, want 5", v)
	}
}

func TestCodeBlockArgs(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(2)
	b.LoadArg(0)
	b.LoadArg(1)
	mul := func(a []afed.Scalar) (afed.Scalar, error) { return a[0].Mul(a[1]), nil }
	b.CallFunc(2, mul, false)
	v, err := b.Eval([]afed.Scalar{afed.Int(6), afed.Int(7)})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(afed.Int(42)) {
		t.Errorf("got %s, want 42", v)
	}
}

func TestCodeBlockTryEvalFoldsConstants(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(0)
	b.LoadConst(afed.Int(4))
	b.LoadConst(afed.Int(5))
	add := func(a []afed.Scalar) (afed.Scalar, error) { return a[0].Add(a[1]), nil }
	b.CallFunc(2, add, true)
	if b.StackHeight() != 1 {
		t.Fatalf("expected try-eval to fold to a single constant, height=%d", b.StackHeight())
	}
	v, err := b.Eval(nil)
	if err != nil || !v.Equal(afed.Int(9)) {
		t.Errorf("got (%s, %v), want 9", v, err)
	}
}

func TestCodeBlockTryEvalFailure(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(0)
	b.LoadConst(afed.Int(1))
	fails := func(a []afed.Scalar) (afed.Scalar, error) { return afed.Scalar{}, errBoom }
	b.CallFunc(1, fails, true)
	if _, err := b.Eval(nil); err != errBoom {
		t.Errorf("expected cached failure error, got %v", err)
	}
	// Once failed, the block is not valid. Later appends are not refused,
	// but Eval keeps returning the cached error until Reset.
	if b.Valid() {
		t.Error("failed block should not be valid")
	}
}

func TestCodeBlockCallCodeDependency(t *testing.T) {
	callee := afed.NewCodeBlock()
	callee.SetArity(0)
	callee.LoadConst(afed.Int(10))

	caller := afed.NewCodeBlock()
	caller.SetArity(0)
	if !caller.CallCode(callee) {
		t.Fatal("CallCode rejected")
	}
	deps := caller.DepList()
	if len(deps) != 1 || deps[0] != callee {
		t.Fatalf("expected single dependency on callee, got %v", deps)
	}
	v, err := caller.Eval(nil)
	if err != nil || !v.Equal(afed.Int(10)) {
		t.Errorf("got (%s, %v), want 10", v, err)
	}
}

func TestCodeBlockResetPreservesArity(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(2)
	b.LoadArg(0)
	b.Reset()
	if b.GetArity() != 2 {
		t.Errorf("Reset should preserve arity, got %d", b.GetArity())
	}
	if b.StackHeight() != 0 {
		t.Errorf("Reset should zero the height, got %d", b.StackHeight())
	}
}

func TestCodeBlockIncompleteIsInvalid(t *testing.T) {
	b := afed.NewCodeBlock()
	b.SetArity(0)
	if _, err := b.Eval(nil); err == nil {
		t.Error("expected incomplete-code error on an empty block")
	}
}

var errBoom = &boomError{}

type boomError struct{}

func (e *boomError) Error() string { return "boom" }
