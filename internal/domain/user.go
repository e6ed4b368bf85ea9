// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Средний след здесь не хранится: он всегда вычисляется по журналу замеров.
type User struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"primaryKey"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email" gorm:"uniqueIndex"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Phone          string    `json:"phone" db:"phone"`
	Address        string    `json:"address" db:"address"`
	NoOfVehicles   int       `json:"noOfVehicles" db:"no_of_vehicles"`
	NoOfGenerators int       `json:"noOfGenerators" db:"no_of_generators"`
	NoOfMotocycles int       `json:"noOfMotocycles" db:"no_of_motocycles"`
	TokenVersion   int       `json:"-" db:"token_version"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// TableName указывает GORM имя таблицы.
func (User) TableName() string { return "users" }

// ProfileUpdate — изменяемые пользователем поля профиля. nil означает "не менять".
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	NoOfVehicles   *int    `json:"noOfVehicles"`
	NoOfGenerators *int    `json:"noOfGenerators"`
	NoOfMotocycles *int    `json:"noOfMotocycles"`
}

// Apply проверяет и применяет изменения к пользователю.
// При ошибке пользователь не изменяется.
func (p ProfileUpdate) Apply(u *User) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	counts := []struct {
		field string
		val   *int
	}{
		{"noOfVehicles", p.NoOfVehicles},
		{"noOfGenerators", p.NoOfGenerators},
		{"noOfMotocycles", p.NoOfMotocycles},
	}
	for _, c := range counts {
		if c.val != nil && *c.val < 0 {
			return &ValidationError{Field: c.field, Reason: "must not be negative"}
		}
	}

	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.NoOfVehicles != nil {
		u.NoOfVehicles = *p.NoOfVehicles
	}
	if p.NoOfGenerators != nil {
		u.NoOfGenerators = *p.NoOfGenerators
	}
	if p.NoOfMotocycles != nil {
		u.NoOfMotocycles = *p.NoOfMotocycles
	}
	return nil
}
