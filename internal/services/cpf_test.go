package services

import "testing"

func TestValidateCPF(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"123.456.789-01", "12345678901", false},
		{"12345678901", "12345678901", false},
		{"  123 456 789 01  ", "12345678901", false},
		{"1234567890", "", true},
		{"123456789012", "", true},
		{"", "", true},
		{"abc.def.ghi-jk", "", true},
	}
	for _, c := range cases {
		got, err := ValidateCPF(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ValidateCPF(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateCPF(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ValidateCPF(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCPF(t *testing.T) {
	if got := FormatCPF("12345678901"); got != "123.456.789-01" {
		t.Errorf("FormatCPF plain = %q", got)
	}
	// Already formatted input is stable.
	if got := FormatCPF("123.456.789-01"); got != "123.456.789-01" {
		t.Errorf("FormatCPF formatted = %q", got)
	}
	// Not a CPF: returned untouched.
	if got := FormatCPF("12345"); got != "12345" {
		t.Errorf("FormatCPF short = %q", got)
	}
}
