// Package quiz is the selection and scoring engine of the vocabulary quiz.
//
// The Builder turns a corpus entry into a multiple-choice question for a
// mode. The Selector decides which entry to ask about, keeping the number
// of words under active study per mode at or below the active cap. Service
// ties both to persisted progress: it issues questions, scores answers,
// reports per-mode statistics and moves progress in and out as bundles.
package quiz
