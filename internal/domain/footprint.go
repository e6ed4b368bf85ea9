package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FootprintEntry — один датированный замер углеродного следа пользователя.
// ID назначается хранилищем и строго возрастает, поэтому порядок по ID совпадает с порядком добавления.
type FootprintEntry struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"index"`
	Date      time.Time `json:"date" db:"date"`
	Value     float64   `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName указывает GORM имя таблицы.
func (FootprintEntry) TableName() string { return "footprint_entries" }

// ParseFootprintValue разбирает сырое значение замера.
func ParseFootprintValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InvalidValueError{Value: raw, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat возвращает ±Inf с ErrRange для переполнения
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, &InvalidValueError{Value: raw, Reason: "must be finite"}
		}
		return 0, &InvalidValueError{Value: raw, Reason: "must be a number"}
	}
	if err := CheckFootprintValue(v); err != nil {
		e := err.(*InvalidValueError)
		e.Value = raw
		return 0, e
	}
	return v, nil
}

// CheckFootprintValue проверяет уже числовое значение.
func CheckFootprintValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidValueError{Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "must be finite"}
	}
	if v < 0 {
		return &InvalidValueError{Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "must not be negative"}
	}
	return nil
}

// Average — среднее арифметическое значений, 0 для пустого набора.
func Average(entries []FootprintEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.Value
	}
	return sum / float64(len(entries))
}
