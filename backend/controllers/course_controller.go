package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/models"
	"project/backend/utils"
)

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *logger.Logger
}

func NewCourseController(db *gorm.DB, cfg *config.Config, log *logger.Logger) *CourseController {
	return &CourseController{DB: db, Cfg: cfg, Log: log}
}

func (cc *CourseController) ListCourses(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Course{})
	if ownerID := c.QueryInt("owner_id", 0); ownerID > 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query courses")
	}

	return c.JSON(courses)
}

type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	OwnerID     uint   `json:"owner_id" validate:"required"`
}

func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	course := models.Course{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	if course.Difficulty == "" {
		course.Difficulty = models.DifficultyMedium
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Preload("Chapters").First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	return c.JSON(fiber.Map{
		"id":          course.ID,
		"owner_id":    course.OwnerID,
		"title":       course.Title,
		"description": course.Description,
		"difficulty":  course.Difficulty,
		"created_at":  course.CreatedAt,
		"chapters":    course.Chapters,
	})
}
