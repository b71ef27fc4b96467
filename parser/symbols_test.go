package parser

import "testing"

func TestSymbolTableDefineAndLookup(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Define("LEN", Data, 0); err != nil {
		t.Fatalf("Define: %v", err)
	}
	sym, ok := st.Lookup("LEN")
	if !ok {
		t.Fatal("Lookup(LEN): not found")
	}
	if sym.Kind != Data || sym.Address != 0 {
		t.Errorf("sym = %+v", sym)
	}
}

func TestSymbolTableRejectsDuplicate(t *testing.T) {
	st := NewSymbolTable()
	_ = st.Define("main", Code, 100)
	if err := st.Define("main", Code, 101); err == nil {
		t.Error("Define duplicate: want error, got nil")
	}
}

func TestBackpatchDataAddresses(t *testing.T) {
	st := NewSymbolTable()
	_ = st.Define("main", Code, 100)
	_ = st.Define("LEN", Data, 0)
	_ = st.Define("VAL", Data, 3)
	st.BackpatchDataAddresses(103)

	main, _ := st.Lookup("main")
	if main.Address != 100 {
		t.Errorf("Code symbol address changed: got %d, want 100", main.Address)
	}
	len_, _ := st.Lookup("LEN")
	if len_.Address != 103 {
		t.Errorf("LEN.Address = %d, want 103", len_.Address)
	}
	val, _ := st.Lookup("VAL")
	if val.Address != 106 {
		t.Errorf("VAL.Address = %d, want 106", val.Address)
	}
}

func TestSetEntryRefusesExternal(t *testing.T) {
	st := NewSymbolTable()
	_ = st.Define("EXT", ExternalSymbol, 0)
	if err := st.SetEntry("EXT"); err == nil {
		t.Error("SetEntry on external symbol: want error, got nil")
	}
}

func TestSetEntryUnknownSymbol(t *testing.T) {
	st := NewSymbolTable()
	if err := st.SetEntry("nope"); err == nil {
		t.Error("SetEntry on unknown symbol: want error, got nil")
	}
}

func TestEntriesOrder(t *testing.T) {
	st := NewSymbolTable()
	_ = st.Define("a", Code, 100)
	_ = st.Define("b", Code, 101)
	_ = st.SetEntry("b")
	_ = st.SetEntry("a")
	entries := st.Entries()
	if len(entries) != 2 || entries[0].Name != "a" || entries[1].Name != "b" {
		t.Errorf("Entries() = %+v, want [a b] in definition order", entries)
	}
}

func TestExternalTableBound(t *testing.T) {
	et := NewExternalTable()
	for i := 0; i < MaxExternalRefsPerName; i++ {
		if !et.Record("EXT", i) {
			t.Fatalf("Record(%d): unexpected overflow", i)
		}
	}
	if et.Record("EXT", 1000) {
		t.Error("Record past bound: want false, got true")
	}
	if len(et.Addresses("EXT")) != MaxExternalRefsPerName {
		t.Errorf("len(Addresses) = %d, want %d", len(et.Addresses("EXT")), MaxExternalRefsPerName)
	}
}

func TestExternalTableNamesInsertionOrder(t *testing.T) {
	et := NewExternalTable()
	et.Record("B", 101)
	et.Record("A", 102)
	et.Record("B", 103)
	names := et.Names()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("Names() = %v, want [B A]", names)
	}
}
