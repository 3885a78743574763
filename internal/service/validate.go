package service

import (
	"net/mail"
	"strings"
)

// normalizeEmail 规范化邮箱并校验格式
func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || len(email) > 255 {
		return "", false
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return "", false
	}
	return email, true
}

func limitText(raw string, max int) (string, bool) {
	text := strings.TrimSpace(raw)
	if len([]rune(text)) > max {
		return text, false
	}
	return text, true
}
