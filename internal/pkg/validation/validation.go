package validation

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Name: letters, spaces, hyphens, apostrophes only.
var nameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

// Phone: optional +, then 7 to 15 digits, spaces and hyphens allowed.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{5,14}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidName(name string) bool {
	return name != "" && nameRe.MatchString(name)
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
