package realtime

import (
	"context"
	"fmt"
)

// Event names pushed to chapter rooms. Clients subscribe to one chapter
// and receive every state change of its generated resources.
const (
	EventProcessingStarted  = "processing-started"
	EventConceptProcessing  = "concept-processing"
	EventExerciseProcessing = "exercise-processing"
	EventQuizProcessing     = "quiz-processing"
	EventConceptCompleted   = "concept-completed"
	EventExerciseCompleted  = "exercise-completed"
	EventQuizCompleted      = "quiz-completed"
	EventAllCompleted       = "all-completed"
	EventQuizGraded         = "quiz-graded"
)

type Event struct {
	Channel string                 `json:"channel"`
	Name    string                 `json:"event"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Notifier is the one-way publish side handlers talk to. The local Hub
// implements it directly; the redis Bus implements it for multi-instance
// deployments.
type Notifier interface {
	Emit(ctx context.Context, event Event)
}

// ChapterChannel names the room for one chapter's updates.
func ChapterChannel(chapterID uint) string {
	return fmt.Sprintf("chapter_%d", chapterID)
}
