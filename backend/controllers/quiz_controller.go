package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/realtime"
	"project/backend/utils"
	"project/backend/workflow"
)

// CorrectScore is awarded for a matching answer in single-quiz mode.
const CorrectScore = 100

type QuizController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Events   realtime.Notifier
	Workflow workflow.Notifier
	Log      *logger.Logger
}

func NewQuizController(db *gorm.DB, cfg *config.Config, events realtime.Notifier, wf workflow.Notifier, log *logger.Logger) *QuizController {
	return &QuizController{DB: db, Cfg: cfg, Events: events, Workflow: wf, Log: log}
}

// GetQuiz returns the quiz for a chapter without the correct answer.
func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var quiz models.Quiz
	if err := qc.DB.Where("chapter_id = ?", chapterID).First(&quiz).Error; err != nil {
		return utils.NotFound(c, "Quiz not found")
	}

	return c.JSON(fiber.Map{
		"id":         quiz.ID,
		"chapter_id": quiz.ChapterID,
		"question":   quiz.Question,
		"options":    decodeOptions(quiz.Options),
		"type":       quiz.Type,
	})
}

type QuizSubmitRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type QuizSubmitResponse struct {
	IsCorrect   bool    `json:"is_correct"`
	Score       int     `json:"score"`
	Explanation *string `json:"explanation"`
}

// SubmitQuiz grades a submitted answer against the stored correct
// answer: trimmed, case-insensitive, exact match. The AI grading path
// runs asynchronously; its result arrives via the answer-finish webhook
// and reaches the client over the realtime channel.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var chapter models.Chapter
	if err := qc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	var quiz models.Quiz
	if err := qc.DB.Where("chapter_id = ?", chapterID).First(&quiz).Error; err != nil {
		return utils.NotFound(c, "Quiz not found")
	}

	if !quiz.Generated() {
		return utils.BadRequest(c, "Quiz has not been generated yet")
	}

	submitted := strings.TrimSpace(req.Answer)
	correct := strings.TrimSpace(*quiz.CorrectAnswer)
	isCorrect := strings.EqualFold(submitted, correct)

	score := 0
	if isCorrect {
		score = CorrectScore
	}

	go func(event workflow.QuizSubmittedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := qc.Workflow.QuizSubmitted(ctx, event); err != nil {
			qc.Log.Warn("notify workflow engine", "error", err, "quiz_id", event.QuizID)
		}
	}(workflow.QuizSubmittedEvent{
		ChapterID: chapterID,
		QuizID:    quiz.ID,
		MemberID:  middleware.UserID(c),
		Answer:    submitted,
	})

	return c.JSON(QuizSubmitResponse{
		IsCorrect:   isCorrect,
		Score:       score,
		Explanation: quiz.Explanation,
	})
}

type GradingWebhook struct {
	QuizID        uint   `json:"quiz_id" validate:"required"`
	MemberID      uint   `json:"member_id"`
	IsCorrect     bool   `json:"is_correct"`
	Score         int    `json:"score"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
	Explanation   string `json:"explanation"`
}

// AnswerFinish receives the asynchronous AI grading result and relays
// it to the chapter room.
func (qc *QuizController) AnswerFinish(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req GradingWebhook
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var quiz models.Quiz
	if err := qc.DB.Where("id = ? AND chapter_id = ?", req.QuizID, chapterID).First(&quiz).Error; err != nil {
		return utils.NotFound(c, "Quiz not found")
	}

	updates := map[string]interface{}{"correct_answer": req.CorrectAnswer}
	if req.Explanation != "" {
		updates["explanation"] = req.Explanation
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&quiz).Updates(updates).Error
	})
	if err != nil {
		qc.Log.Error("save grading result", "error", err, "quiz_id", req.QuizID)
		return utils.InternalServerError(c, "Could not save grading result")
	}

	qc.Events.Emit(c.Context(), realtime.Event{
		Channel: realtime.ChapterChannel(chapterID),
		Name:    realtime.EventQuizGraded,
		Data: fiber.Map{
			"chapter_id": chapterID,
			"quiz_id":    quiz.ID,
			"member_id":  req.MemberID,
			"is_correct": req.IsCorrect,
			"score":      req.Score,
			"message":    "Quiz has been graded",
		},
	})

	return c.JSON(fiber.Map{"status": "success", "chapter_id": chapterID})
}
