package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/braccet/tournament-engine/internal/api/middleware"
)

// NewRouter wires the command/query surface over s: chi.Logger/Recoverer,
// cors.Handler scoped to corsOrigins, a JSON content-type default, then an
// Auth-guarded route tree. jwtSecret comes from internal/config so the
// daemon never hardcodes it.
func NewRouter(s *Server, jwtSecret []byte, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", Health)

	r.Group(func(r chi.Router) {
		r.Use(authmw.Auth(jwtSecret))

		r.Route("/containers", func(r chi.Router) {
			r.Post("/", s.CreateTournament)
			r.Get("/{containerId}", s.GetContainer)
			r.Delete("/{containerId}", s.DeleteContainer)
			r.Put("/{containerId}/current-phase", s.SetCurrentPhase)
		})

		r.Put("/current-tournament", s.SetCurrentTournament)

		r.Route("/tournaments/{tournamentId}", func(r chi.Router) {
			r.Get("/", s.GetTournament)
			r.Put("/teams", s.UpdateTeams)
			r.Put("/settings", s.UpdateSettings)
			r.Put("/groups", s.UpdateGroups)
			r.Post("/start", s.StartTournament)
			r.Post("/next-round", s.GenerateNextSwissRound)
			r.Post("/reset", s.ResetTournament)
			r.Delete("/", s.DeleteTournament)
			r.Post("/knockout", s.CreateKnockoutTournament)
			r.Post("/finals", s.CreateFinalsTournament)

			r.Get("/standings", s.GetStandings)
			r.Get("/matches", s.ListMatches)
			r.Put("/matches/{matchId}/score", s.UpdateMatchScore)
			r.Post("/matches/{matchId}/complete", s.CompleteMatch)
			r.Put("/matches/{matchId}/edit-score", s.EditMatchScore)

			r.Post("/teams/{teamId}/forfeit", s.ForfeitTeam)
		})
	})

	return r
}
