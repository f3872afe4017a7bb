package services

import "errors"

var ErrInvalidCPF = errors.New("cpf must have 11 digits")

// NormalizeCPF strips everything that is not a digit.
func NormalizeCPF(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

// ValidateCPF returns the normalized 11-digit CPF or ErrInvalidCPF. Only the
// digit count is checked; check-digit math is out of scope here.
func ValidateCPF(s string) (string, error) {
	n := NormalizeCPF(s)
	if len(n) != 11 {
		return "", ErrInvalidCPF
	}
	return n, nil
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Already-formatted
// input comes back unchanged, anything else is returned as-is.
func FormatCPF(s string) string {
	n := NormalizeCPF(s)
	if len(n) != 11 {
		return s
	}
	return n[0:3] + "." + n[3:6] + "." + n[6:9] + "-" + n[9:11]
}
