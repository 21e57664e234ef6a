package domain

import (
	"errors"
	"fmt"
)

// 业务错误哨兵：统一在 transport 层映射为 code（见 ez 包）
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

func Invalidf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, a...)...)
}

func NotFoundf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, a...)...)
}

func Forbiddenf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, a...)...)
}

func Conflictf(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, a...)...)
}
