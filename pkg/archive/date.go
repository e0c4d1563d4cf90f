package archive

import "strings"

// NormalizeDate converts a dotted archive date (YYYY[.MM[.DD]]) into the
// canonical dashed form YYYY-MM-DD. Missing month and day components default
// to 01; single-digit components are left-padded to two digits.
//
// Empty, whitespace-only, or otherwise malformed tokens normalize to the
// empty string. Normalization never fails: callers treat an empty result as
// "unknown", not as an error.
func NormalizeDate(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	// A bare year is valid dotted input with month and day absent.
	parts := strings.Split(token, ".")
	year := parts[0]
	if !numeric(year) || len(year) != 4 {
		return ""
	}

	month := "01"
	if len(parts) > 1 && parts[1] != "" {
		if !numeric(parts[1]) {
			return ""
		}
		month = pad2(parts[1])
	}

	day := "01"
	if len(parts) > 2 && parts[2] != "" {
		if !numeric(parts[2]) {
			return ""
		}
		day = pad2(parts[2])
	}

	return year + "-" + month + "-" + day
}

// pad2 left-pads a numeric component to two digits.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// numeric reports whether s is non-empty and all ASCII digits.
func numeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
