// Package api exposes the quiz engine over HTTP. Handlers translate
// requests into quiz.Service calls and map service errors to sanitized
// JSON error responses.
package api
