package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/auth"
	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/domain"
	"github.com/google/uuid"
)

const (
	seedPassword       = "password123"
	factoryMaxValue    = 500
	factoryHistoryDays = 365
)

type sampleUser struct {
	user       domain.User
	footprints []float64
}

var sampleUsers = []sampleUser{
	{
		user: domain.User{
			Name: "Alice Johnson", Email: "alice@example.com",
			Phone: "555-1234", Address: "123 Apple St",
			NoOfVehicles: 1, NoOfGenerators: 0, NoOfMotocycles: 1,
		},
		footprints: []float64{150},
	},
	{
		user: domain.User{
			Name: "Bob Smith", Email: "eze.raph@gmail.com",
			Phone: "555-5678", Address: "456 Orange Ave",
			NoOfVehicles: 2, NoOfGenerators: 1, NoOfMotocycles: 0,
		},
		footprints: []float64{20, 203, 7, 67, 60, 10},
	},
}

// SeedResult — итог заполнения тестовыми данными.
type SeedResult struct {
	CreatedUsers   int
	SkippedUsers   int
	CreatedEntries int
}

// Seeder заполняет хранилище тестовыми пользователями и замерами.
// Все замеры проходят через журнал, поэтому на них действуют те же проверки.
type Seeder struct {
	userStorage ports.UserStorage
	ledger      FootprintLedger
	rnd         *rand.Rand
	now         func() time.Time
	logger      *slog.Logger
}

func NewSeeder(userStorage ports.UserStorage, ledger FootprintLedger, logger *slog.Logger) *Seeder {
	return &Seeder{
		userStorage: userStorage,
		ledger:      ledger,
		rnd:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:         time.Now,
		logger:      logger,
	}
}

// Seed идемпотентен: существующие пользователи пропускаются, а случайные
// замеры создаются только для пользователей, созданных в этом запуске.
func (s *Seeder) Seed(ctx context.Context, factoryEntries int) (SeedResult, error) {
	var res SeedResult
	var created []uuid.UUID

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return res, err
	}

	for _, sample := range sampleUsers {
		_, err := s.userStorage.FindUserByEmail(ctx, sample.user.Email)
		if err == nil {
			res.SkippedUsers++
			s.logger.Info("seed user already exists", "email", sample.user.Email)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return res, fmt.Errorf("seed lookup %s: %w", sample.user.Email, err)
		}

		now := s.now().UTC()
		u := sample.user
		u.ID = uuid.New()
		u.PasswordHash = hash
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := s.userStorage.CreateUser(ctx, &u); err != nil {
			return res, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		res.CreatedUsers++
		created = append(created, u.ID)

		for _, v := range sample.footprints {
			if _, err := s.ledger.AppendValue(ctx, u.ID, now, v); err != nil {
				return res, fmt.Errorf("seed footprint for %s: %w", u.Email, err)
			}
			res.CreatedEntries++
		}
	}

	if len(created) == 0 {
		return res, nil
	}
	for i := 0; i < factoryEntries; i++ {
		userID := created[s.rnd.IntN(len(created))]
		date := s.now().UTC().Add(-time.Duration(s.rnd.Int64N(int64(factoryHistoryDays * 24 * time.Hour))))
		value := strconv.Itoa(s.rnd.IntN(factoryMaxValue + 1))
		if _, err := s.ledger.Append(ctx, userID, date, value); err != nil {
			return res, fmt.Errorf("seed factory entry: %w", err)
		}
		res.CreatedEntries++
	}
	s.logger.Info("factory footprints created", "count", factoryEntries, "users", len(created))
	return res, nil
}
