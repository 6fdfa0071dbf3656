package user

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]{3,150}$`)

// commonPasswords is a short deny list of the passwords most often tried first.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "12345678": {}, "123456789": {}, "qwertyui": {},
	"iloveyou": {}, "lozinka1": {}, "lozinka123": {}, "11111111": {}, "abcdefgh": {},
}

// VerifyPasswordComplexity checks the password rules: at least 8 characters,
// not only digits, not a well-known password and not the username itself.
func VerifyPasswordComplexity(pw, username string) error {
	if len([]rune(pw)) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if strings.Trim(pw, "0123456789") == "" {
		return fmt.Errorf("password cannot be entirely numeric")
	}
	if _, common := commonPasswords[strings.ToLower(pw)]; common {
		return fmt.Errorf("password is too common")
	}
	if username != "" && strings.EqualFold(pw, username) {
		return fmt.Errorf("password is too similar to the username")
	}
	return nil
}
