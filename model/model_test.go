package model

import (
	"testing"

	"github.com/lxthorne/tableau"
	"github.com/lxthorne/tableau/formula"
)

func TestAssertAndSatisfies(t *testing.T) {
	m := New([]string{"a"}, nil, false, "", "R")
	m.Assert("P", "a")
	if !m.Satisfies("P", "a") {
		t.Errorf("expected P(a) to hold")
	}
	if m.Satisfies("P", "b") {
		t.Errorf("unasserted atom should be false")
	}
}

func TestEmptyDomainPromotedToSingleton(t *testing.T) {
	m := New(nil, nil, false, "", "R")
	if got := m.Domain(); len(got) != 1 || got[0] != "0" {
		t.Errorf("empty domain should be promoted to {0}, got %v", got)
	}
}

func TestExtendToSatisfyUniversal(t *testing.T) {
	m := New([]string{"a", "b"}, nil, false, "", "R")
	m.Assert("P", "a")
	m.Assert("P", "b")
	f := formula.Quant{Q: tableau.Forall, Var: "x", Matrix: formula.Atomic{Pred: "P", Terms: []formula.Term{formula.Sym{Name: "x"}}}}
	if !m.ExtendToSatisfy(f) {
		t.Errorf("expected ∀xPx to hold when P holds of every domain element")
	}
	m2 := New([]string{"a", "b"}, nil, false, "", "R")
	m2.Assert("P", "a")
	if m2.ExtendToSatisfy(f) {
		t.Errorf("expected ∀xPx to fail when P fails of some domain element")
	}
}

func TestExtendToSatisfyDiamond(t *testing.T) {
	m := New([]string{"0"}, []string{"w", "v", "u"}, true, "w", "R")
	m.Assert("R", "w", "v")
	m.Assert("R", "w", "u")
	m.Assert("p", "v")
	dia := formula.ModalF{Op: tableau.Diamond, Sub: formula.Atomic{Pred: "p"}}
	if !m.ExtendToSatisfy(dia) {
		t.Errorf("expected ◇p to hold via accessible world v")
	}
	box := formula.ModalF{Op: tableau.Box, Sub: formula.Atomic{Pred: "p"}}
	if m.ExtendToSatisfy(box) {
		t.Errorf("□p should fail: accessible world u does not satisfy p")
	}
}

func TestSatisfiesInitFormulas(t *testing.T) {
	m := New([]string{"a"}, nil, false, "", "R")
	m.Assert("P", "a")
	forms := []formula.Formula{
		formula.Atomic{Pred: "P", Terms: []formula.Term{formula.Sym{Name: "a"}}},
	}
	if !m.SatisfiesInitFormulas(forms) {
		t.Errorf("expected model to satisfy its own asserted formulas")
	}
}
