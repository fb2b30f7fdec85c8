package semverver

import "testing"

func TestVersionCompareAndBump(t *testing.T) {
	a := MustNew("1.2.3")
	b := MustNew("1.2.4")

	if a.Compare(b) >= 0 {
		t.Fatalf("1.2.3 should compare less than 1.2.4")
	}
	if a.Bump().(Version).String() != "1.2.4" {
		t.Fatalf("Bump() of 1.2.3 should be 1.2.4, got %s", a.Bump())
	}
}

func TestParseConstraintExact(t *testing.T) {
	r, err := ParseConstraint("1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contains(MustNew("1.2.3")) {
		t.Fatal("exact constraint should contain its own version")
	}
	if r.Contains(MustNew("1.2.4")) {
		t.Fatal("exact constraint should not contain a different version")
	}
}

func TestParseConstraintComparators(t *testing.T) {
	r, err := ParseConstraint(">=1.0.0 <2.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contains(MustNew("1.5.0")) {
		t.Fatal(">=1.0.0 <2.0.0 should contain 1.5.0")
	}
	if r.Contains(MustNew("2.0.0")) {
		t.Fatal(">=1.0.0 <2.0.0 should not contain 2.0.0")
	}
}

func TestParseConstraintCaret(t *testing.T) {
	r, err := ParseConstraint("^1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contains(MustNew("1.9.0")) {
		t.Fatal("^1.2.3 should allow 1.9.0")
	}
	if r.Contains(MustNew("2.0.0")) {
		t.Fatal("^1.2.3 should not allow 2.0.0")
	}
}

func TestParseConstraintOr(t *testing.T) {
	r, err := ParseConstraint("1.0.0 || 2.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Contains(MustNew("1.0.0")) || !r.Contains(MustNew("2.0.0")) {
		t.Fatal("OR constraint should contain both alternatives")
	}
	if r.Contains(MustNew("1.5.0")) {
		t.Fatal("OR constraint should not contain a version matching neither branch")
	}
}
