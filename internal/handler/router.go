package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/core/ports"
	"github.com/GoArmGo/CarbonTracker/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Dependencies — всё, что нужно HTTP-слою. Publisher и Pinger необязательны.
type Dependencies struct {
	Auth       usecase.AuthUseCase
	Profiles   usecase.ProfileUseCase
	Ledger     usecase.FootprintLedger
	Calculator usecase.CalculatorUseCase
	News       usecase.NewsUseCase
	Reports    usecase.ReportUseCase
	Publisher  ports.FootprintSubmissionPublisher
	Pinger     ports.Pinger

	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter собирает chi-маршрутизатор со всеми эндпоинтами.
func NewRouter(d Dependencies) http.Handler {
	authHandler := NewAuthHandler(d.Auth, d.Logger)
	profileHandler := NewProfileHandler(d.Profiles, d.Logger)
	footprintHandler := NewFootprintHandler(d.Ledger, d.Publisher, d.Logger)
	calculatorHandler := NewCalculatorHandler(d.Calculator, d.Logger)
	newsHandler := NewNewsHandler(d.News, d.Logger)
	reportHandler := NewReportHandler(d.Reports, d.Logger)
	healthHandler := NewHealthHandler(d.Pinger, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.Get("/health", healthHandler.Health)
	r.Get("/healthz", healthHandler.Ready)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/calculator/options", calculatorHandler.Options)
	r.Get("/news", newsHandler.Latest)

	r.Group(func(r chi.Router) {
		r.Use(Authenticator(d.Auth, d.Logger))

		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/me/profile", profileHandler.GetProfile)
		r.Put("/me/profile", profileHandler.UpdateProfile)
		r.Put("/me/password", profileHandler.ChangePassword)
		r.Get("/me/footprints", footprintHandler.ListFootprints)
		r.Post("/me/footprints", footprintHandler.AppendFootprint)
		r.Post("/me/report", reportHandler.Export)

		r.Post("/footprints/import", footprintHandler.ImportFootprints)
		r.Post("/calculator", calculatorHandler.Submit)
		r.Get("/users/{id}/profile", profileHandler.GetPublicProfile)
	})

	return r
}
