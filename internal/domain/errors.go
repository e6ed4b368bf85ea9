package domain

import (
	"errors"
	"fmt"
)

// Общие ошибки предметной области. Сверяются через errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("The provided credentials are incorrect.")
	ErrFeatureDisabled    = errors.New("feature is not configured")
	ErrUpstream           = errors.New("upstream service failed")
)

// NotFoundError — запрошенная сущность отсутствует.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is позволяет сравнивать с ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UserNotFound — короткий конструктор для самого частого случая.
func UserNotFound(id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entity: "user", ID: id.String()}
}

// InvalidValueError — значение замера не является конечным неотрицательным числом.
type InvalidValueError struct {
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid footprint value %q: %s", e.Value, e.Reason)
}

// ValidationError — поле формы отсутствует или имеет неверный формат.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
