package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/api/shared"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/platform/logger"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
	"github.com/phrazzld/bibliobuddy/internal/redact"
)

// QuizHandler handles quiz and progress HTTP requests.
type QuizHandler struct {
	quizService quiz.Service
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService quiz.Service, logger *slog.Logger) *QuizHandler {
	if quizService == nil {
		panic("quizService cannot be nil for QuizHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// getPathMode parses the {mode} URL parameter.
func getPathMode(r *http.Request) (domain.Mode, error) {
	return domain.ParseMode(chi.URLParam(r, "mode"))
}

// decodeAndValidate decodes the body into req and validates it, writing a
// 400 response on failure.
func (h *QuizHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := shared.DecodeJSON(r, req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// ListModes handles GET /api/modes.
func (h *QuizHandler) ListModes(w http.ResponseWriter, r *http.Request) {
	modes := h.quizService.Modes()
	response := make([]ModeResponse, len(modes))
	for i, m := range modes {
		response[i] = ModeResponse{Mode: m.Mode, Label: m.Label, Prompt: m.Prompt}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetNextQuestion handles GET /api/modes/{mode}/question.
// A mode with nothing to ask still answers 200 with the outcome and stats.
func (h *QuizHandler) GetNextQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	selection, err := h.quizService.GetNextQuestion(r.Context(), mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("next question served",
		slog.String("mode", string(mode)),
		slog.String("outcome", string(selection.Outcome)))
	shared.RespondWithJSON(w, r, http.StatusOK, selectionToResponse(selection))
}

// SubmitAnswer handles POST /api/modes/{mode}/answer.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AnswerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question_id: invalid UUID format")
		return
	}

	result, err := h.quizService.SubmitAnswer(r.Context(), mode, questionID, *req.OptionIndex)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("answer submitted",
		slog.String("mode", string(mode)),
		slog.String("question_id", questionID.String()),
		slog.Bool("correct", result.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, answerToResponse(result))
}

// GetStats handles GET /api/modes/{mode}/stats.
func (h *QuizHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stats, err := h.quizService.GetStats(r.Context(), mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(*stats))
}

// GetSnapshot handles GET /api/modes/{mode}/snapshot.
func (h *QuizHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	snapshot, err := h.quizService.Snapshot(r.Context(), mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, snapshotToResponse(snapshot))
}

// SetReviewMastered handles PUT /api/modes/{mode}/review.
func (h *QuizHandler) SetReviewMastered(w http.ResponseWriter, r *http.Request) {
	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	stats, err := h.quizService.SetReviewMastered(r.Context(), mode, *req.Enabled)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(*stats))
}

// ResetProgress handles DELETE /api/modes/{mode}/progress.
func (h *QuizHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	mode, err := getPathMode(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.quizService.ResetMode(r.Context(), mode); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("progress reset via API", slog.String("mode", string(mode)))
	w.WriteHeader(http.StatusNoContent)
}

// GetWordDetails handles GET /api/words/{word}.
func (h *QuizHandler) GetWordDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.quizService.WordDetails(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, detailsToResponse(*details))
}

// ExportProgress handles GET /api/progress/export. The bundle is served
// as a download.
func (h *QuizHandler) ExportProgress(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.quizService.Export(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="bibliobuddy-progress.json"`)
	shared.RespondWithJSON(w, r, http.StatusOK, bundle)
}

// ImportProgress handles POST /api/progress/import.
func (h *QuizHandler) ImportProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := shared.ReadBody(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	report, err := h.quizService.Import(r.Context(), body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("progress imported via API",
		slog.Int("imported", len(report.Imported)),
		slog.Int("skipped", len(report.Skipped)))
	shared.RespondWithJSON(w, r, http.StatusOK, ImportResponse{
		Imported:      report.Imported,
		Skipped:       report.Skipped,
		ImportedCount: len(report.Imported),
		SkippedCount:  len(report.Skipped),
	})
}
