package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the quiz API on r under /api.
func RegisterRoutes(r chi.Router, h *QuizHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/modes", h.ListModes)

		r.Route("/modes/{mode}", func(r chi.Router) {
			r.Get("/question", h.GetNextQuestion)
			r.Post("/answer", h.SubmitAnswer)
			r.Get("/stats", h.GetStats)
			r.Get("/snapshot", h.GetSnapshot)
			r.Put("/review", h.SetReviewMastered)
			r.Delete("/progress", h.ResetProgress)
		})

		r.Get("/words/{word}", h.GetWordDetails)

		r.Get("/progress/export", h.ExportProgress)
		r.Post("/progress/import", h.ImportProgress)
	})
}
