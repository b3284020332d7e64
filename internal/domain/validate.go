package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTextLen = 255

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)
	isbnPattern  = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)
)

// requireText 非空（trim 后）且不超过 255 字符；label 形如 "Book title"
func requireText(label, v string) error {
	if strings.TrimSpace(v) == "" {
		return Validation(label + " cannot be empty")
	}
	if utf8.RuneCountInString(v) > maxTextLen {
		return Validation(label + " cannot exceed 255 characters")
	}
	return nil
}

func requireEmail(label, v string) error {
	if strings.TrimSpace(v) == "" {
		return Validation(label + " cannot be empty")
	}
	if !emailPattern.MatchString(v) {
		return Validation("Invalid email format")
	}
	if utf8.RuneCountInString(v) > maxTextLen {
		return Validation(label + " cannot exceed 255 characters")
	}
	return nil
}

func requirePhone(label, v string) error {
	if strings.TrimSpace(v) == "" {
		return Validation(label + " cannot be empty")
	}
	if !phonePattern.MatchString(v) {
		return Validation("Invalid phone format")
	}
	if utf8.RuneCountInString(v) > 20 {
		return Validation(label + " cannot exceed 20 characters")
	}
	return nil
}

// normalizeISBN 返回 trim 后的 ISBN
func normalizeISBN(v string) (string, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return "", Validation("Book ISBN cannot be empty")
	}
	if !isbnPattern.MatchString(s) {
		return "", Validation("Book ISBN must be a 10 or 13 digit numeric string")
	}
	return s, nil
}

func requirePositive(msg string, id int64) error {
	if id <= 0 {
		return Validation(msg)
	}
	return nil
}
