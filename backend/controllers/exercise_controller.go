package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/models"
	"project/backend/utils"
)

type ExerciseController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *logger.Logger
}

func NewExerciseController(db *gorm.DB, cfg *config.Config, log *logger.Logger) *ExerciseController {
	return &ExerciseController{DB: db, Cfg: cfg, Log: log}
}

// GetExercise returns the exercise for a chapter. The reference answer
// stays hidden until the student has marked the exercise complete.
func (ec *ExerciseController) GetExercise(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var exercise models.Exercise
	if err := ec.DB.Where("chapter_id = ?", chapterID).First(&exercise).Error; err != nil {
		return utils.NotFound(c, "Exercise not found")
	}

	view := fiber.Map{
		"id":          exercise.ID,
		"chapter_id":  exercise.ChapterID,
		"question":    exercise.Question,
		"difficulty":  exercise.Difficulty,
		"is_complete": exercise.IsComplete,
	}
	if exercise.IsComplete {
		view["answer"] = exercise.Answer
		view["explanation"] = exercise.Explanation
	}

	return c.JSON(view)
}

type ExerciseUpdateRequest struct {
	IsComplete bool `json:"is_complete"`
}

// UpdateExercise marks the exercise as completed (or not) by the student.
func (ec *ExerciseController) UpdateExercise(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req ExerciseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var exercise models.Exercise
	if err := ec.DB.Where("chapter_id = ?", chapterID).First(&exercise).Error; err != nil {
		return utils.NotFound(c, "Exercise not found")
	}

	if err := ec.DB.Model(&exercise).Update("is_complete", req.IsComplete).Error; err != nil {
		return utils.InternalServerError(c, "Could not update exercise")
	}

	return c.JSON(fiber.Map{
		"chapter_id":  chapterID,
		"is_complete": req.IsComplete,
		"updated_at":  exercise.UpdatedAt,
	})
}
