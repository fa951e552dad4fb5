// Package password scores password strength and hashes passwords.
package password

import (
	"regexp"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

type Level string

const (
	VeryWeak Level = "very-weak"
	Weak     Level = "weak"
	Medium   Level = "medium"
	Strong   Level = "strong"
)

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Result is the outcome of scoring a password. Only Strong passwords are Valid.
type Result struct {
	Score   int    `json:"score"`
	Level   Level  `json:"level"`
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// Score sums five checks: length >= 8, length >= 12, mixed case, a digit and a special character.
// Length is counted in UTF-16 code units, the way the browser counts it.
func Score(pw string) int {
	score := 0
	length := Length(pw)
	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}
	if lowerRe.MatchString(pw) && upperRe.MatchString(pw) {
		score++
	}
	if digitRe.MatchString(pw) {
		score++
	}
	if specialRe.MatchString(pw) {
		score++
	}
	return score
}

// Length returns the UTF-16 length of pw. Characters outside the BMP count twice.
func Length(pw string) int {
	n := 0
	for _, r := range pw {
		if size := utf16.RuneLen(r); size > 0 {
			n += size
		} else {
			n++
		}
	}
	return n
}

func LevelFor(score int) Level {
	switch {
	case score <= 0:
		return VeryWeak
	case score <= 2:
		return Weak
	case score == 3:
		return Medium
	default:
		return Strong
	}
}

func Check(pw string) Result {
	score := Score(pw)
	level := LevelFor(score)
	return Result{
		Score:   score,
		Level:   level,
		IsValid: level == Strong,
		Message: level.Message(),
	}
}

func (l Level) Message() string {
	switch l {
	case VeryWeak:
		return "Password is too weak. Must be at least 8 characters."
	case Weak:
		return "Password is weak. Add uppercase letters, numbers, and special characters."
	case Medium:
		return "Password is medium strength. Add more characters or special characters for better security."
	case Strong:
		return "Password is strong."
	}
	return "Invalid password"
}

func Hash(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func Compare(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
