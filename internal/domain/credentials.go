package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength     = 255
	maxEmailLength    = 255
	MinPasswordLength = 8
)

// Registration — данные формы регистрации.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Normalize обрезает пробелы и приводит email к нижнему регистру.
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	return r
}

// Validate возвращает первую ошибку в порядке: name, email, password, password_confirmation.
// Уникальность email проверяется отдельно, на уровне хранилища.
func (r Registration) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validateNewPassword("password", r.Password, "password_confirmation", r.PasswordConfirmation)
}

// PasswordChange — данные формы смены пароля.
type PasswordChange struct {
	CurrentPassword         string `json:"currentPassword"`
	NewPassword             string `json:"newPassword"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation"`
}

// Validate проверяет форму без сверки текущего пароля.
func (p PasswordChange) Validate() error {
	if p.CurrentPassword == "" {
		return &ValidationError{Field: "currentPassword", Reason: "is required"}
	}
	return validateNewPassword("newPassword", p.NewPassword, "newPasswordConfirmation", p.NewPasswordConfirmation)
}

// NormalizeEmail приводит email к каноническому виду для поиска и хранения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &ValidationError{Field: "name", Reason: "is required"}
	case utf8.RuneCountInString(name) > maxNameLength:
		return &ValidationError{Field: "name", Reason: "must not be longer than 255 characters"}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{Field: "email", Reason: "must not be longer than 255 characters"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

func validateNewPassword(field, password, confirmField, confirmation string) error {
	if password == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ValidationError{Field: field, Reason: "must be at least 8 characters"}
	}
	if password != confirmation {
		return &ValidationError{Field: confirmField, Reason: "does not match"}
	}
	return nil
}
