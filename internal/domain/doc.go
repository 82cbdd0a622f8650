// Package domain contains the vocabulary entities shared by the quiz engine:
// corpus entries and their synonym data, quiz modes, and the per-mode
// progress a learner accumulates. It has no knowledge of storage or transport.
package domain
