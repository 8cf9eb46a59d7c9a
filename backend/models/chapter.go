package models

import "gorm.io/gorm"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	QuizTypeMultiple = "multiple"
	QuizTypeShort    = "short"
	QuizTypeBoolean  = "boolean"
)

// Chapter is one learning unit created from a single student question.
// The title holds the question text. Exactly one Concept, Exercise and
// Quiz row exist per chapter; all three are created empty alongside the
// chapter and filled in later by the generation webhooks.
type Chapter struct {
	gorm.Model
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	CourseID    *uint   `gorm:"index" json:"course_id,omitempty"`
	Title       string  `gorm:"not null" json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `gorm:"default:pending" json:"status"` // pending, completed
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Concept  Concept  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quiz     Quiz     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Concept is the chapter's explanatory content. IsComplete means the
// student marked it as learned; generation state is "title and content
// are non-null".
type Concept struct {
	gorm.Model
	ChapterID  uint    `gorm:"not null;uniqueIndex" json:"chapter_id"`
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	IsComplete bool    `gorm:"default:false" json:"is_complete"`
}

type Exercise struct {
	gorm.Model
	ChapterID   uint    `gorm:"not null;uniqueIndex" json:"chapter_id"`
	Question    *string `json:"question"`
	Answer      *string `json:"answer"`
	Explanation *string `json:"explanation,omitempty"`
	Difficulty  string  `gorm:"default:medium" json:"difficulty"`
	IsComplete  bool    `gorm:"default:false" json:"is_complete"`
}

// Quiz has no completion flag of its own: it counts as generated once
// Question and CorrectAnswer are both non-null, which is what the
// generation webhook writes. Options holds a JSON-encoded string list.
type Quiz struct {
	gorm.Model
	ChapterID     uint    `gorm:"not null;uniqueIndex" json:"chapter_id"`
	Question      *string `json:"question"`
	Options       *string `json:"-"`
	CorrectAnswer *string `json:"-"`
	Explanation   *string `json:"explanation,omitempty"`
	Type          string  `gorm:"default:multiple" json:"type"` // multiple, short, boolean
}

// Generated reports whether the AI content for this quiz has landed.
func (q *Quiz) Generated() bool {
	return q.Question != nil && q.CorrectAnswer != nil
}
