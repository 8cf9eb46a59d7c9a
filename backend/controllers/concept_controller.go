package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/models"
	"project/backend/utils"
)

type ConceptController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *logger.Logger
}

func NewConceptController(db *gorm.DB, cfg *config.Config, log *logger.Logger) *ConceptController {
	return &ConceptController{DB: db, Cfg: cfg, Log: log}
}

// GetConcept returns the concept for a chapter.
func (cc *ConceptController) GetConcept(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var concept models.Concept
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&concept).Error; err != nil {
		return utils.NotFound(c, "Concept not found")
	}

	return c.JSON(concept)
}

type ConceptUpdateRequest struct {
	IsComplete bool `json:"is_complete"`
}

// UpdateConcept marks the concept as learned (or not) by the student.
func (cc *ConceptController) UpdateConcept(c *fiber.Ctx) error {
	chapterID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var req ConceptUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var concept models.Concept
	if err := cc.DB.Where("chapter_id = ?", chapterID).First(&concept).Error; err != nil {
		return utils.NotFound(c, "Concept not found")
	}

	if err := cc.DB.Model(&concept).Update("is_complete", req.IsComplete).Error; err != nil {
		return utils.InternalServerError(c, "Could not update concept")
	}

	return c.JSON(fiber.Map{
		"chapter_id":  chapterID,
		"is_complete": req.IsComplete,
		"updated_at":  concept.UpdatedAt,
	})
}
