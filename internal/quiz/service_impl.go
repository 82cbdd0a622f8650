package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/domain/mastery"
	"github.com/phrazzld/bibliobuddy/internal/events"
	"github.com/phrazzld/bibliobuddy/internal/platform/logger"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

// ProgressRepository persists per-mode progress. *store.ProgressStore implements it.
type ProgressRepository interface {
	Load(ctx context.Context, mode domain.Mode) (*domain.ModeProgress, error)
	Save(ctx context.Context, mode domain.Mode, progress *domain.ModeProgress) error
	Reset(ctx context.Context, mode domain.Mode) error
	Export(ctx context.Context, now time.Time) (*store.Bundle, error)
	Import(ctx context.Context, raw []byte) (*store.ImportReport, error)
}

// Verify interface compliance at compile time
var (
	_ Service            = (*quizServiceImpl)(nil)
	_ ProgressRepository = (*store.ProgressStore)(nil)
)

// quizServiceImpl implements the Service interface.
type quizServiceImpl struct {
	mu       sync.Mutex
	corpus   Corpus
	progress ProgressRepository
	emitter  events.EventEmitter
	params   Params
	rng      *rand.Rand
	now      func() time.Time
	builder  *Builder
	selector *Selector
	pending  map[domain.Mode]*Question
	logger   *slog.Logger
}

// Dependencies holds the collaborators of the quiz service.
type Dependencies struct {
	Corpus   Corpus
	Progress ProgressRepository
	// Emitter receives progress events. Optional.
	Emitter events.EventEmitter
	Params  Params
	// Rand drives selection and shuffling. A time-seeded source is used when nil.
	Rand *rand.Rand
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

// NewService creates a quiz Service.
func NewService(deps Dependencies) Service {
	if deps.Corpus == nil {
		panic("corpus cannot be nil")
	}
	if deps.Progress == nil {
		panic("progress cannot be nil")
	}

	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	params := deps.Params.withDefaults()
	builder := NewBuilder(deps.Corpus, rng, params.OptionCount)

	return &quizServiceImpl{
		corpus:   deps.Corpus,
		progress: deps.Progress,
		emitter:  deps.Emitter,
		params:   params,
		rng:      rng,
		now:      clock,
		builder:  builder,
		selector: NewSelector(builder, params, rng),
		pending:  make(map[domain.Mode]*Question),
		logger:   log.With(slog.String("component", "quiz_service")),
	}
}

func checkMode(mode domain.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	return nil
}

// Modes implements Service.Modes.
func (s *quizServiceImpl) Modes() []ModeInfo {
	modes := domain.Modes()
	out := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		out = append(out, ModeInfo{Mode: m, Label: m.Label(), Prompt: m.Prompt()})
	}
	return out
}

// GetNextQuestion implements Service.GetNextQuestion.
func (s *quizServiceImpl) GetNextQuestion(ctx context.Context, mode domain.Mode) (*Selection, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progress.Load(ctx, mode)
	if err != nil {
		log.Error("failed to load progress",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		return nil, NewServiceError("get_next_question", "failed to load progress", err)
	}

	selection := s.selector.SelectNext(mode, progress)
	if selection.Question == nil {
		delete(s.pending, mode)
		log.Debug("no question available",
			slog.String("mode", string(mode)),
			slog.String("outcome", string(selection.Outcome)))
		return &selection, nil
	}

	selection.Question.ID = uuid.New()
	s.pending[mode] = selection.Question

	log.Debug("question issued",
		slog.String("mode", string(mode)),
		slog.String("question_id", selection.Question.ID.String()),
		slog.String("word", selection.Question.Word))
	return &selection, nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *quizServiceImpl) SubmitAnswer(
	ctx context.Context,
	mode domain.Mode,
	questionID uuid.UUID,
	optionIndex int,
) (*AnswerResult, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.pending[mode]
	if !ok || question.ID != questionID {
		log.Warn("answer for a question that is not pending",
			slog.String("mode", string(mode)),
			slog.String("question_id", questionID.String()))
		return nil, ErrQuestionNotFound
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidOption, optionIndex, len(question.Options))
	}

	progress, err := s.progress.Load(ctx, mode)
	if err != nil {
		return nil, NewServiceError("submit_answer", "failed to load progress", err)
	}

	correct := question.Options[optionIndex].IsCorrect
	score := progress.RecordAnswer(question.Word, correct, s.now())
	if err := s.progress.Save(ctx, mode, progress); err != nil {
		log.Error("failed to save progress",
			slog.String("mode", string(mode)),
			slog.String("word", question.Word),
			slog.String("error", err.Error()))
		return nil, NewServiceError("submit_answer", "failed to save progress", err)
	}
	delete(s.pending, mode)

	category := mastery.Classify(score, true)
	log.Info("answer recorded",
		slog.String("mode", string(mode)),
		slog.String("word", question.Word),
		slog.Bool("correct", correct),
		slog.Int("score", score))

	s.emit(ctx, events.TypeAnswerRecorded, mode, events.AnswerRecordedPayload{
		Word:      question.Word,
		IsCorrect: correct,
		NewScore:  score,
		Category:  string(category),
	})

	return &AnswerResult{
		QuestionID:   question.ID,
		Word:         question.Word,
		IsCorrect:    correct,
		CorrectIndex: question.CorrectIndex(),
		NewScore:     score,
		NewCategory:  category,
		Details:      s.details(question.Word),
		Stats:        s.selector.Stats(mode, progress),
	}, nil
}

// GetStats implements Service.GetStats.
func (s *quizServiceImpl) GetStats(ctx context.Context, mode domain.Mode) (*Stats, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progress.Load(ctx, mode)
	if err != nil {
		return nil, NewServiceError("get_stats", "failed to load progress", err)
	}
	stats := s.selector.Stats(mode, progress)
	return &stats, nil
}

// SetReviewMastered implements Service.SetReviewMastered.
func (s *quizServiceImpl) SetReviewMastered(ctx context.Context, mode domain.Mode, enabled bool) (*Stats, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progress.Load(ctx, mode)
	if err != nil {
		return nil, NewServiceError("set_review_mastered", "failed to load progress", err)
	}
	progress.ReviewMastered = enabled
	if err := s.progress.Save(ctx, mode, progress); err != nil {
		return nil, NewServiceError("set_review_mastered", "failed to save progress", err)
	}
	delete(s.pending, mode)

	log.Info("review mode toggled",
		slog.String("mode", string(mode)),
		slog.Bool("enabled", enabled))
	s.emit(ctx, events.TypeReviewToggled, mode, events.ReviewToggledPayload{Enabled: enabled})

	stats := s.selector.Stats(mode, progress)
	return &stats, nil
}

// ResetMode implements Service.ResetMode.
func (s *quizServiceImpl) ResetMode(ctx context.Context, mode domain.Mode) error {
	if err := checkMode(mode); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.progress.Reset(ctx, mode); err != nil {
		return NewServiceError("reset_mode", "failed to reset progress", err)
	}
	delete(s.pending, mode)

	log.Info("progress reset", slog.String("mode", string(mode)))
	s.emit(ctx, events.TypeProgressReset, mode, struct{}{})
	return nil
}

// Snapshot implements Service.Snapshot.
func (s *quizServiceImpl) Snapshot(ctx context.Context, mode domain.Mode) (*Snapshot, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.progress.Load(ctx, mode)
	if err != nil {
		return nil, NewServiceError("snapshot", "failed to load progress", err)
	}

	byCategory := make(map[mastery.Category][]string)
	for _, e := range s.builder.EligibleEntries(mode) {
		score, known := progress.Score(e.Word)
		c := mastery.Classify(score, known)
		byCategory[c] = append(byCategory[c], e.Word)
	}

	categories := mastery.All()
	groups := make([]SnapshotGroup, 0, len(categories))
	for _, c := range categories {
		words := byCategory[c]
		if words == nil {
			words = []string{}
		}
		slices.Sort(words)
		groups = append(groups, SnapshotGroup{
			Category: c,
			Label:    c.Label(),
			Count:    len(words),
			Words:    words,
		})
	}

	return &Snapshot{
		Mode:   mode,
		Groups: groups,
		Stats:  s.selector.Stats(mode, progress),
	}, nil
}

// WordDetails implements Service.WordDetails.
func (s *quizServiceImpl) WordDetails(ctx context.Context, word string) (*WordDetails, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.ErrEmptyWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.corpus.Lookup(word); !ok {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	details := s.details(word)
	return &details, nil
}

// Export implements Service.Export.
func (s *quizServiceImpl) Export(ctx context.Context) (*store.Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundle, err := s.progress.Export(ctx, s.now())
	if err != nil {
		return nil, NewServiceError("export", "failed to export progress", err)
	}
	return bundle, nil
}

// Import implements Service.Import.
func (s *quizServiceImpl) Import(ctx context.Context, raw []byte) (*store.ImportReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.progress.Import(ctx, raw)
	if err != nil {
		if errors.Is(err, store.ErrUnsupportedBundle) {
			return nil, err
		}
		return nil, NewServiceError("import", "failed to import progress", err)
	}
	clear(s.pending)

	log.Info("progress bundle imported",
		slog.Int("imported", len(report.Imported)),
		slog.Int("skipped", len(report.Skipped)))
	s.emit(ctx, events.TypeProgressImported, "", events.ProgressImportedPayload{
		Imported: len(report.Imported),
		Skipped:  len(report.Skipped),
	})
	return report, nil
}

// details builds the study card for word. Callers hold s.mu.
func (s *quizServiceImpl) details(word string) WordDetails {
	entry, _ := s.corpus.Lookup(word)
	rec, _ := s.corpus.Synonyms(word)

	return WordDetails{
		Word:       entry.Word,
		POS:        entry.POS,
		Definition: entry.Definition,
		Synonyms:   randomSubset(s.rng, rec.Synonyms, s.params.DetailLimit),
		Sentences:  randomSubset(s.rng, rec.Sentences, s.params.DetailLimit),
	}
}

// randomSubset returns up to limit items of list in random order. The
// result is never nil.
func randomSubset(rng *rand.Rand, list []string, limit int) []string {
	out := slices.Clone(list)
	if out == nil {
		return []string{}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// emit publishes an event. Failures are logged and never fail the caller.
func (s *quizServiceImpl) emit(ctx context.Context, eventType string, mode domain.Mode, payload any) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewProgressEvent(eventType, string(mode), payload, s.now())
	if err != nil {
		log.Error("failed to create progress event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("progress event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
