// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBareNames(t *testing.T) {
	input := "Ilham ALLOUI\n\nFlavien VERNIER\n  Emmanuel Trouvé  \n"
	names, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Ilham ALLOUI", "Flavien VERNIER", "Emmanuel Trouvé"}
	if len(names) != len(want) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParseLabeledLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"standard", "First Name: Ilham , Last Name: ALLOUI", "Ilham ALLOUI"},
		{"no spaces around comma", "First Name: Flavien,Last Name: VERNIER", "Flavien VERNIER"},
		{"missing last name", "First Name: Ilham", "Ilham"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := Parse(strings.NewReader(tt.line))
			if err != nil {
				t.Fatal(err)
			}
			if len(names) != 1 || names[0] != tt.want {
				t.Errorf("Parse(%q) = %v, want [%q]", tt.line, names, tt.want)
			}
		})
	}
}

func TestParsePreservesOrder(t *testing.T) {
	input := "B Second\nA First\nC Third\n"
	names, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if names[0] != "B Second" || names[1] != "A First" || names[2] != "C Third" {
		t.Errorf("roster order not preserved: %v", names)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "researchers.txt")
	if err := os.WriteFile(path, []byte("Ilham ALLOUI\nFirst Name: Flavien , Last Name: VERNIER\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Ilham ALLOUI" || names[1] != "Flavien VERNIER" {
		t.Errorf("Load = %v", names)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
