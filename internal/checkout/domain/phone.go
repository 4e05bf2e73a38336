package domain

import "regexp"

// Russian mobile number: +7 then 10 digits, with optional spaces,
// parentheses and dashes between groups.
var phoneRe = regexp.MustCompile(`^\+7[\s(]*\d{3}[\s)]*[\s-]*\d{3}[\s-]*\d{2}[\s-]*\d{2}$`)

// ValidPhone reports whether raw is an acceptable contact phone.
func ValidPhone(raw string) bool {
	return phoneRe.MatchString(raw)
}
