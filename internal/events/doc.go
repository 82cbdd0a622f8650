// Package events carries notifications about learner progress changes.
//
// The quiz engine emits a ProgressEvent after every persisted mutation:
// an answer recorded, a mode reset, the review toggle flipped, or a bundle
// imported. Handlers subscribe through InMemoryEventEmitter and never
// affect the outcome of the operation that produced the event.
package events
