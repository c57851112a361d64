// Утилитарные функции общего назначения
package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

func StrPtr(s string) *string {
	return &s
}

// NilIfEmpty возвращает nil для пустой (после trim) строки.
// Так опциональные поля контакта хранятся как NULL, а не как "".
func NilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref возвращает значение указателя или "" для nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
