// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields: a test sets only the functions it cares
// about, and unset functions return zero values.
//
//	svc := &mocks.MockQuizService{
//	    GetStatsFn: func(ctx context.Context, mode domain.Mode) (*quiz.Stats, error) {
//	        return &quiz.Stats{Mode: mode, ActiveCap: 50}, nil
//	    },
//	}
package mocks
