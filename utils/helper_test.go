package utils

import "testing"

func TestParseCurrencyDecimal_AcceptsFormattedStrings(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"20000", "20000"},
		{"20,000", "20000"},
		{"MMK 20,000", "20000"},
		{"$ -1,234.50", "-1234.5"},
		{"  ks 1,234.50  ", "1234.5"},
		{"3.50", "3.5"},
	}
	for _, tc := range cases {
		d, err := ParseCurrencyDecimal(tc.in)
		if err != nil {
			t.Fatalf("ParseCurrencyDecimal(%q) error: %v", tc.in, err)
		}
		if d.String() != tc.expected {
			t.Fatalf("ParseCurrencyDecimal(%q) expected %s, got %s", tc.in, tc.expected, d.String())
		}
	}
}

func TestParseCurrencyDecimal_RejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "$"} {
		if _, err := ParseCurrencyDecimal(in); err == nil {
			t.Fatalf("ParseCurrencyDecimal(%q) expected error, got none", in)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 12.25 ")
	if err != nil {
		t.Fatalf("ParseDecimal error: %v", err)
	}
	if d.String() != "12.25" {
		t.Fatalf("expected 12.25, got %s", d.String())
	}

	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected error for empty string")
	}
	if _, err := ParseDecimal("12a"); err == nil {
		t.Fatal("expected error for malformed number")
	}
}
