// Package opcode holds the static mnemonic table for the pedagogical
// machine's instruction set: 16 mnemonics, each with a fixed opcode and
// operand arity.
package opcode

// Entry is one row of the mnemonic table.
type Entry struct {
	Mnemonic string
	Code     int
	Arity    int
}

var table = []Entry{
	{"mov", 0, 2},
	{"cmp", 1, 2},
	{"add", 2, 2},
	{"sub", 3, 2},
	{"lea", 4, 2},
	{"clr", 5, 1},
	{"not", 6, 1},
	{"inc", 7, 1},
	{"dec", 8, 1},
	{"jmp", 9, 1},
	{"bne", 10, 1},
	{"red", 11, 1},
	{"prn", 12, 1},
	{"jsr", 13, 1},
	{"rts", 14, 0},
	{"stop", 15, 0},
}

// byMnemonic is built once at init for O(1) lookup; the table itself stays
// a plain slice since its declaration order matches the original listing.
var byMnemonic = func() map[string]Entry {
	m := make(map[string]Entry, len(table))
	for _, e := range table {
		m[e.Mnemonic] = e
	}
	return m
}()

// Lookup returns the entry for an exact, case-sensitive mnemonic match and
// whether one was found.
func Lookup(mnemonic string) (Entry, bool) {
	e, ok := byMnemonic[mnemonic]
	return e, ok
}

// IsMnemonic reports whether s names one of the 16 instructions.
func IsMnemonic(s string) bool {
	_, ok := byMnemonic[s]
	return ok
}
