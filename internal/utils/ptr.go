package utils

import "strings"

// Ptr returns a pointer to a copy of v. Handy for optional JSON and SQL fields.
func Ptr[T any](v T) *T {
	return &v
}

// OrZero dereferences v, giving the zero value for nil.
func OrZero[T any](v *T) T {
	return OrDefault(v, *new(T))
}

func OrDefault[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

// StringOrNil trims s and maps the empty result to nil, for nullable text columns.
func StringOrNil(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
