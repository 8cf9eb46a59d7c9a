package workflow

import "context"

// ChapterCreatedEvent asks the workflow engine to generate the concept,
// exercise and quiz for a freshly created chapter.
type ChapterCreatedEvent struct {
	ChapterID   uint   `json:"chapter_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// QuizSubmittedEvent asks the workflow engine to grade a submitted
// answer with the AI model. The result comes back via the answer-finish
// webhook.
type QuizSubmittedEvent struct {
	ChapterID uint   `json:"chapter_id"`
	QuizID    uint   `json:"quiz_id"`
	MemberID  uint   `json:"member_id"`
	Answer    string `json:"answer"`
}

// Notifier is the one-way send side towards the external workflow
// engine. Sends are best-effort: callers log failures and continue, the
// triggering record already exists in a valid pending state.
type Notifier interface {
	ChapterCreated(ctx context.Context, event ChapterCreatedEvent) error
	QuizSubmitted(ctx context.Context, event QuizSubmittedEvent) error
}
