package models

import "testing"

func TestNormalizeSku(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Shampoo", "SHAMPOO"},
		{"hand soap", "HANDSOAP"},
		{"  Hand  Soap  ", "HANDSOAP"},
		{"hand\tsoap", "HANDSOAP"},
		{"Deo-Spray 250ml", "DEO-SPRAY250ML"},
	}
	for _, tc := range cases {
		if got := NormalizeSku(tc.in); got != tc.expected {
			t.Fatalf("NormalizeSku(%q) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

// Two distinct names normalizing to the same sku must be treated as the same
// product.
func TestNormalizeSku_Collision(t *testing.T) {
	if NormalizeSku("Hand Soap") != NormalizeSku("HandSoap") {
		t.Fatal("expected identical skus for colliding names")
	}
	if NormalizeSku("hand soap") != NormalizeSku("HAND  SOAP") {
		t.Fatal("expected identical skus regardless of case and spacing")
	}
}
