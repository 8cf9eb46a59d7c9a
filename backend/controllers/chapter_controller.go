package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/models"
	"project/backend/realtime"
	"project/backend/utils"
	"project/backend/workflow"
)

type ChapterController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Events   realtime.Notifier
	Workflow workflow.Notifier
	Log      *logger.Logger
}

func NewChapterController(db *gorm.DB, cfg *config.Config, events realtime.Notifier, wf workflow.Notifier, log *logger.Logger) *ChapterController {
	return &ChapterController{DB: db, Cfg: cfg, Events: events, Workflow: wf, Log: log}
}

type ChapterCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id" validate:"required"`
	CourseID    *uint  `json:"course_id"`
}

type ChapterCreateResponse struct {
	ChapterID  uint      `json:"chapter_id"`
	ConceptID  uint      `json:"concept_id"`
	ExerciseID uint      `json:"exercise_id"`
	QuizID     uint      `json:"quiz_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateChapter registers a student question. The chapter and its three
// empty resource rows are written in one transaction; the generation
// workflow is signalled afterwards, fire-and-forget.
func (cc *ChapterController) CreateChapter(c *fiber.Ctx) error {
	var req ChapterCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	chapter := models.Chapter{
		OwnerID:  req.OwnerID,
		CourseID: req.CourseID,
		Title:    req.Title,
		Status:   models.StatusPending,
		IsActive: true,
	}
	if req.Description != "" {
		chapter.Description = &req.Description
	}

	var concept models.Concept
	var exercise models.Exercise
	var quiz models.Quiz

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chapter).Error; err != nil {
			return err
		}
		concept = models.Concept{ChapterID: chapter.ID}
		if err := tx.Create(&concept).Error; err != nil {
			return err
		}
		exercise = models.Exercise{ChapterID: chapter.ID, Difficulty: models.DifficultyMedium}
		if err := tx.Create(&exercise).Error; err != nil {
			return err
		}
		quiz = models.Quiz{ChapterID: chapter.ID, Type: models.QuizTypeMultiple}
		return tx.Create(&quiz).Error
	})
	if err != nil {
		cc.Log.Error("create chapter", "error", err)
		return utils.InternalServerError(c, "Could not create chapter")
	}

	channel := realtime.ChapterChannel(chapter.ID)
	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: channel,
		Name:    realtime.EventProcessingStarted,
		Data: fiber.Map{
			"chapter_id": chapter.ID,
			"title":      chapter.Title,
			"message":    "Content generation started",
		},
	})
	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: channel,
		Name:    realtime.EventConceptProcessing,
		Data:    fiber.Map{"chapter_id": chapter.ID, "concept_id": concept.ID},
	})
	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: channel,
		Name:    realtime.EventExerciseProcessing,
		Data:    fiber.Map{"chapter_id": chapter.ID, "exercise_id": exercise.ID},
	})
	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: channel,
		Name:    realtime.EventQuizProcessing,
		Data:    fiber.Map{"chapter_id": chapter.ID, "quiz_id": quiz.ID},
	})

	// Best-effort: the chapter stays pending and the trigger can be
	// re-sent manually if the workflow engine is unreachable.
	go func(event workflow.ChapterCreatedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := cc.Workflow.ChapterCreated(ctx, event); err != nil {
			cc.Log.Warn("notify workflow engine", "error", err, "chapter_id", event.ChapterID)
		}
	}(workflow.ChapterCreatedEvent{
		ChapterID:   chapter.ID,
		Title:       chapter.Title,
		Description: req.Description,
	})

	return c.Status(fiber.StatusCreated).JSON(ChapterCreateResponse{
		ChapterID:  chapter.ID,
		ConceptID:  concept.ID,
		ExerciseID: exercise.ID,
		QuizID:     quiz.ID,
		Status:     chapter.Status,
		CreatedAt:  chapter.CreatedAt,
	})
}

// GetLearningPage returns the combined chapter/concept/exercise/quiz
// snapshot so the learning page loads with a single call.
func (cc *ChapterController) GetLearningPage(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var chapter models.Chapter
	if err := cc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	var concept models.Concept
	var conceptView fiber.Map
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&concept).Error; err == nil {
		conceptView = fiber.Map{
			"id":          concept.ID,
			"title":       concept.Title,
			"content":     concept.Content,
			"is_complete": concept.IsComplete,
		}
	}

	var exercise models.Exercise
	var exerciseView fiber.Map
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&exercise).Error; err == nil {
		exerciseView = fiber.Map{
			"id":          exercise.ID,
			"question":    exercise.Question,
			"is_complete": exercise.IsComplete,
		}
	}

	var quiz models.Quiz
	var quizView fiber.Map
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&quiz).Error; err == nil {
		quizView = fiber.Map{
			"id":       quiz.ID,
			"question": quiz.Question,
			"options":  decodeOptions(quiz.Options),
			"type":     quiz.Type,
		}
	}

	return c.JSON(fiber.Map{
		"chapter_id":  chapter.ID,
		"title":       chapter.Title,
		"description": chapter.Description,
		"status":      chapter.Status,
		"concept":     conceptView,
		"exercise":    exerciseView,
		"quiz":        quizView,
	})
}

func (cc *ChapterController) ListChapters(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := cc.DB.Model(&models.Chapter{})
	if ownerID := c.QueryInt("owner_id", 0); ownerID > 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	var chapters []models.Chapter
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&chapters).Error; err != nil {
		return utils.InternalServerError(c, "Could not query chapters")
	}

	return c.JSON(chapters)
}

type ConceptWebhook struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type ExerciseWebhook struct {
	Question    string `json:"question" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
	Explanation string `json:"explanation"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type QuizWebhook struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
	Type          string   `json:"type" validate:"omitempty,oneof=multiple short boolean"`
}

// ConceptFinish receives the generated concept from the workflow engine.
func (cc *ChapterController) ConceptFinish(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req ConceptWebhook
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var chapter models.Chapter
	if err := cc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	var concept models.Concept
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&concept).Error; err != nil {
		return utils.NotFound(c, "Concept not found")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&concept).Updates(map[string]interface{}{
			"title":       req.Title,
			"content":     req.Content,
			"is_complete": true,
		}).Error
	})
	if err != nil {
		cc.Log.Error("save concept webhook", "error", err, "chapter_id", chapterID)
		return utils.InternalServerError(c, "Could not save concept")
	}

	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: realtime.ChapterChannel(chapterID),
		Name:    realtime.EventConceptCompleted,
		Data: fiber.Map{
			"chapter_id": chapterID,
			"concept_id": concept.ID,
			"title":      req.Title,
			"message":    "Concept is ready",
		},
	})

	cc.checkAllCompleted(c.Context(), chapterID)

	return c.JSON(fiber.Map{"status": "success", "chapter_id": chapterID})
}

// ExerciseFinish receives the generated exercise from the workflow engine.
func (cc *ChapterController) ExerciseFinish(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req ExerciseWebhook
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var chapter models.Chapter
	if err := cc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	var exercise models.Exercise
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&exercise).Error; err != nil {
		return utils.NotFound(c, "Exercise not found")
	}

	updates := map[string]interface{}{
		"question":    req.Question,
		"answer":      req.Answer,
		"is_complete": true,
	}
	if req.Explanation != "" {
		updates["explanation"] = req.Explanation
	}
	if req.Difficulty != "" {
		updates["difficulty"] = req.Difficulty
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&exercise).Updates(updates).Error
	})
	if err != nil {
		cc.Log.Error("save exercise webhook", "error", err, "chapter_id", chapterID)
		return utils.InternalServerError(c, "Could not save exercise")
	}

	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: realtime.ChapterChannel(chapterID),
		Name:    realtime.EventExerciseCompleted,
		Data: fiber.Map{
			"chapter_id":  chapterID,
			"exercise_id": exercise.ID,
			"message":     "Exercise is ready",
		},
	})

	cc.checkAllCompleted(c.Context(), chapterID)

	return c.JSON(fiber.Map{"status": "success", "chapter_id": chapterID})
}

// QuizFinish receives the generated quiz from the workflow engine.
func (cc *ChapterController) QuizFinish(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req QuizWebhook
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var chapter models.Chapter
	if err := cc.DB.First(&chapter, chapterID).Error; err != nil {
		return utils.NotFound(c, "Chapter not found")
	}

	var quiz models.Quiz
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&quiz).Error; err != nil {
		return utils.NotFound(c, "Quiz not found")
	}

	updates := map[string]interface{}{
		"question":       req.Question,
		"correct_answer": req.CorrectAnswer,
	}
	if req.Explanation != "" {
		updates["explanation"] = req.Explanation
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if len(req.Options) > 0 {
		encoded, err := json.Marshal(req.Options)
		if err != nil {
			return utils.BadRequest(c, "Invalid options")
		}
		updates["options"] = string(encoded)
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&quiz).Updates(updates).Error
	})
	if err != nil {
		cc.Log.Error("save quiz webhook", "error", err, "chapter_id", chapterID)
		return utils.InternalServerError(c, "Could not save quiz")
	}

	cc.Events.Emit(c.Context(), realtime.Event{
		Channel: realtime.ChapterChannel(chapterID),
		Name:    realtime.EventQuizCompleted,
		Data: fiber.Map{
			"chapter_id": chapterID,
			"quiz_id":    quiz.ID,
			"message":    "Quiz is ready",
		},
	})

	cc.checkAllCompleted(c.Context(), chapterID)

	return c.JSON(fiber.Map{"status": "success", "chapter_id": chapterID})
}

// checkAllCompleted re-reads the three resource rows and, once all of
// them are present, flips the chapter from pending to completed. The
// flip is a conditional update so concurrent webhook arrivals promote
// the chapter exactly once; only the caller whose update took effect
// emits the all-completed event.
func (cc *ChapterController) checkAllCompleted(ctx context.Context, chapterID uint) {
	var concept models.Concept
	if err := cc.DB.Where("chapter_id = ? AND is_complete = ?", chapterID, true).First(&concept).Error; err != nil {
		return
	}

	var exercise models.Exercise
	if err := cc.DB.Where("chapter_id = ? AND is_complete = ?", chapterID, true).First(&exercise).Error; err != nil {
		return
	}

	var quiz models.Quiz
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&quiz).Error; err != nil {
		return
	}
	if !quiz.Generated() {
		return
	}

	res := cc.DB.Model(&models.Chapter{}).
		Where("id = ? AND status = ?", chapterID, models.StatusPending).
		Update("status", models.StatusCompleted)
	if res.Error != nil {
		cc.Log.Error("complete chapter", "error", res.Error, "chapter_id", chapterID)
		return
	}
	if res.RowsAffected == 0 {
		return
	}

	cc.Events.Emit(ctx, realtime.Event{
		Channel: realtime.ChapterChannel(chapterID),
		Name:    realtime.EventAllCompleted,
		Data: fiber.Map{
			"chapter_id": chapterID,
			"status":     models.StatusCompleted,
			"message":    "All chapter content is ready",
		},
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func decodeOptions(raw *string) []string {
	if raw == nil {
		return nil
	}
	var options []string
	if err := json.Unmarshal([]byte(*raw), &options); err != nil {
		return nil
	}
	return options
}
