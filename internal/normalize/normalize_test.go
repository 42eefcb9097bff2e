package normalize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multiline", "  linha1 \n\n  linha2  ", "linha1 linha2"},
		{"tabs", "a\t\tb", "a b"},
		{"already clean", "Processo 123", "Processo 123"},
		{"only whitespace", " \n\t ", ""},
		{"accents preserved", "  ACÓRDÃO  nº  42 ", "ACÓRDÃO nº 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.in)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"  linha1 \n\n  linha2  ",
		"RECURSO ORDINÁRIO.   Provido.",
		"",
		"\n\n\n",
	}
	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Errorf("Text not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestLines(t *testing.T) {
	got := Lines("Processo 123\n\n  Texto da  ementa. \n")
	want := []string{"Processo 123", "Texto da ementa."}
	if len(got) != len(want) {
		t.Fatalf("Lines returned %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
