package parser

import "testing"

func TestBaseCode(t *testing.T) {
	tests := []struct {
		description string
		expected    string
	}{
		{"GDP;RBNZ;Millions;Nominal", "CBP.NZL.GDP.RBNZ.MILLIONS.NOMINAL.Q"},
		{"Real GDP (production), $m", "CBP.NZL.REAL.GDP.PRODUCTION.Q"},
		{"CPI_X index", "CBP.NZL.CPI_X.INDEX.Q"},
		{"  Output   gap ; ; RBNZ  ", "CBP.NZL.OUTPUT.GAP.RBNZ.Q"},
		{"one two three four;five six seven;eight nine ten;eleven", "CBP.NZL.ONE.TWO.THREE.FIVE.SIX.SEVEN.EIGHT.NINE.Q"},
		{"aaa;bbb;ccc;ddd;eee;fff;ggg", "CBP.NZL.AAA.BBB.CCC.DDD.EEE.FFF.Q"},
		{"", "CBP.NZL.UNKNOWN.SERIES.Q"},
		{"a;bc;%", "CBP.NZL.UNKNOWN.SERIES.Q"},
	}

	for _, tt := range tests {
		if got := BaseCode(tt.description); got != tt.expected {
			t.Errorf("BaseCode(%q) = %q, expected %q", tt.description, got, tt.expected)
		}
	}
}

func TestCodeRegistry(t *testing.T) {
	r := NewCodeRegistry()

	first := r.Issue("GDP;RBNZ")
	second := r.Issue("GDP;RBNZ")
	third := r.Issue("GDP (RBNZ)")
	other := r.Issue("CPI")

	expected := []string{
		"CBP.NZL.GDP.RBNZ.Q",
		"CBP.NZL.GDP.RBNZ.1.Q",
		"CBP.NZL.GDP.RBNZ.2.Q",
		"CBP.NZL.CPI.Q",
	}
	for i, got := range []string{first, second, third, other} {
		if got != expected[i] {
			t.Errorf("Issue #%d = %q, expected %q", i+1, got, expected[i])
		}
	}

	if r.Len() != 4 {
		t.Errorf("Len = %d, expected 4", r.Len())
	}
	for _, code := range expected {
		if !r.Has(code) {
			t.Errorf("registry should contain %q", code)
		}
	}
	codes := r.Codes()
	for i := range expected {
		if codes[i] != expected[i] {
			t.Errorf("Codes()[%d] = %q, expected %q", i, codes[i], expected[i])
		}
	}
}

func TestMnemonic(t *testing.T) {
	if got := Mnemonic("CBP.NZL.GDP.1.Q"); got != "CBP.NZL.GDP.1" {
		t.Errorf("Mnemonic = %q", got)
	}
}
