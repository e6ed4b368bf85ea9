package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout — формат дат профиля (Y-m-d).
const DateLayout = "2006-01-02"

// ProfileSnapshot — представление профиля, отдаваемое клиенту.
type ProfileSnapshot struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	NoOfVehicles     int              `json:"noOfVehicles"`
	NoOfGenerators   int              `json:"noOfGenerators"`
	NoOfMotocycles   int              `json:"noOfMotocycles"`
	AverageFootprint float64          `json:"averageCarbonFootPrint"`
	History          []FootprintEntry `json:"carbonFootPrints"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// PublicProfile — сводка, видимая другим пользователям.
type PublicProfile struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	AverageFootprint float64          `json:"averageCarbonFootPrint"`
	History          []FootprintEntry `json:"carbonFootPrints"`
}

// NewProfileSnapshot собирает снимок из пользователя и истории.
// Отсутствующие необязательные поля нормализуются к "" и 0, история никогда не nil.
func NewProfileSnapshot(u User, history []FootprintEntry, average float64) ProfileSnapshot {
	if history == nil {
		history = []FootprintEntry{}
	}
	return ProfileSnapshot{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Address:          u.Address,
		NoOfVehicles:     nonNegative(u.NoOfVehicles),
		NoOfGenerators:   nonNegative(u.NoOfGenerators),
		NoOfMotocycles:   nonNegative(u.NoOfMotocycles),
		AverageFootprint: average,
		History:          history,
		CreatedAt:        formatDate(u.CreatedAt),
		UpdatedAt:        formatDate(u.UpdatedAt),
	}
}

// Public отбрасывает контактные данные.
func (s ProfileSnapshot) Public() PublicProfile {
	return PublicProfile{
		ID:               s.ID,
		Name:             s.Name,
		AverageFootprint: s.AverageFootprint,
		History:          s.History,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
