package parser

import "testing"

func runFirstPass(t *testing.T, lines []string) FirstPassResult {
	t.Helper()
	errs := NewErrorLog()
	macros := NewMacroTable()
	return FirstPass("t.am", lines, macros, errs)
}

func TestFirstPassEmptyProgram(t *testing.T) {
	r := runFirstPass(t, []string{"stop"})
	if !r.Succeeded {
		t.Fatal("expected success")
	}
	if r.ICFinal != 101 || r.DC != 0 {
		t.Errorf("ICFinal=%d DC=%d, want 101 0", r.ICFinal, r.DC)
	}
}

func TestFirstPassDataAndLabelBackpatch(t *testing.T) {
	lines := []string{
		"LEN: .data 5,-1",
		"main: mov LEN,r1",
		"stop",
	}
	r := runFirstPass(t, lines)
	if !r.Succeeded {
		t.Fatalf("expected success, errors logged")
	}
	// mov (3 words: base + LEN + r1) then stop (1 word): IC ends at 104.
	if r.ICFinal != 104 || r.DC != 2 {
		t.Errorf("ICFinal=%d DC=%d, want 104 2", r.ICFinal, r.DC)
	}
	lenSym, ok := r.Symbols.Lookup("LEN")
	if !ok || lenSym.Address != 104 {
		t.Errorf("LEN = %+v, want address 104", lenSym)
	}
	mainSym, ok := r.Symbols.Lookup("main")
	if !ok || mainSym.Address != 100 {
		t.Errorf("main = %+v, want address 100", mainSym)
	}
}

func TestFirstPassExternDefinesZeroAddressSymbol(t *testing.T) {
	lines := []string{".extern EXT", "jmp EXT", "stop"}
	r := runFirstPass(t, lines)
	if !r.Succeeded {
		t.Fatal("expected success")
	}
	sym, ok := r.Symbols.Lookup("EXT")
	if !ok || sym.Kind != ExternalSymbol || sym.Address != 0 {
		t.Errorf("EXT = %+v, want {Kind:external Address:0}", sym)
	}
}

func TestFirstPassDuplicateSymbolRejected(t *testing.T) {
	lines := []string{"a: .data 1", "a: .data 2"}
	r := runFirstPass(t, lines)
	if r.Succeeded {
		t.Fatal("expected failure on duplicate symbol")
	}
}

func TestFirstPassUnknownOperation(t *testing.T) {
	r := runFirstPass(t, []string{"frobnicate r1"})
	if r.Succeeded {
		t.Fatal("expected failure on unknown operation")
	}
}

func TestFirstPassEntryLabelIgnored(t *testing.T) {
	// A label before .entry never defines a symbol: it is silently
	// dropped, never an error.
	r := runFirstPass(t, []string{"x: .entry main", "main: stop"})
	if !r.Succeeded {
		t.Fatalf("expected success")
	}
	if _, ok := r.Symbols.Lookup("x"); ok {
		t.Error("label before .entry must not define a symbol")
	}
}

func TestFirstPassStringDirectiveCounterIncludesTerminator(t *testing.T) {
	r := runFirstPass(t, []string{`s: .string "ab"`})
	if !r.Succeeded {
		t.Fatal("expected success")
	}
	if r.DC != 3 {
		t.Errorf("DC = %d, want 3 (2 chars + terminator)", r.DC)
	}
}

func TestFirstPassEmptyStringOnlyTerminator(t *testing.T) {
	r := runFirstPass(t, []string{`s: .string ""`})
	if !r.Succeeded {
		t.Fatal("expected success")
	}
	if r.DC != 1 {
		t.Errorf("DC = %d, want 1", r.DC)
	}
}

func TestFirstPassTwoRegisterInstruction(t *testing.T) {
	r := runFirstPass(t, []string{"add r1,r2", "stop"})
	if !r.Succeeded {
		t.Fatal("expected success")
	}
	if r.ICFinal != 100+2+1 {
		t.Errorf("ICFinal = %d, want %d", r.ICFinal, 100+2+1)
	}
}

func TestFirstPassEntryLabelMacroNameCollisionIgnored(t *testing.T) {
	// .entry never defines a symbol, so the macro-collision check — which
	// only guards actual symbol definitions — must not fire here either.
	errs := NewErrorLog()
	macros := NewMacroTable()
	_ = macros.Define("GREET", []string{"mov #1,r0"})
	r := FirstPass("t.am", []string{"GREET: .entry main", "main: stop"}, macros, errs)
	if !r.Succeeded {
		t.Fatalf("expected success, errors logged: %v", errs.Entries())
	}
}

func TestFirstPassSymbolMacroNameCollision(t *testing.T) {
	errs := NewErrorLog()
	macros := NewMacroTable()
	_ = macros.Define("GREET", []string{"mov #1,r0"})
	r := FirstPass("t.am", []string{"GREET: .data 1"}, macros, errs)
	if r.Succeeded {
		t.Fatal("expected failure: symbol collides with macro name")
	}
}
