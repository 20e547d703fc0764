package services

import "testing"

func TestNameCollator_Compare(t *testing.T) {
	nc := NewNameCollator("es")

	testCases := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"equal", "Bulones", "Bulones", 0},
		{"alphabetical", "Arandelas", "Bulones", -1},
		{"accented letter sorts with its base", "Ángulos", "Bulones", -1},
		{"case does not dominate", "bulones", "Cables", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nc.Compare(tc.a, tc.b); got != tc.expected {
				t.Errorf("Compare(%q, %q): expected %d, got %d", tc.a, tc.b, tc.expected, got)
			}
		})
	}
}

func TestSortBy(t *testing.T) {
	nc := NewNameCollator("not a locale!!")
	names := []string{"Zócalo", "Ábaco", "mesa", "Banco"}

	SortBy(nc, names, func(s string) string { return s })

	expected := []string{"Ábaco", "Banco", "mesa", "Zócalo"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("Expected order %v, got %v", expected, names)
		}
	}
}
