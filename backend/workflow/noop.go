package workflow

import "context"

// Noop discards every notification. Used in tests and when no workflow
// engine is configured.
type Noop struct{}

func (Noop) ChapterCreated(_ context.Context, _ ChapterCreatedEvent) error { return nil }

func (Noop) QuizSubmitted(_ context.Context, _ QuizSubmittedEvent) error { return nil }
