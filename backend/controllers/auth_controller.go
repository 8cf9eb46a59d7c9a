package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/logger"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/session"
	"project/backend/utils"
)

type AuthController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions session.Store
	Log      *logger.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, sessions session.Store, log *logger.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Sessions: sessions, Log: log}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignupResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	MemberID    uint   `json:"member_id"`
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var existing models.Member
	err := ac.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	member := models.Member{Email: req.Email, Password: string(hashed)}
	if err := ac.DB.Create(&member).Error; err != nil {
		return utils.InternalServerError(c, "Could not create member")
	}

	return c.Status(fiber.StatusCreated).JSON(SignupResponse{
		ID:        member.ID,
		Email:     member.Email,
		CreatedAt: member.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var member models.Member
	if err := ac.DB.Where("email = ?", req.Email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(member.ID, member.Email, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	if err := ac.Sessions.Save(c.Context(), member.ID, token, utils.TokenTTL); err != nil {
		ac.Log.Error("save session", "error", err, "member_id", member.ID)
		return utils.InternalServerError(c, "Could not store session")
	}

	return c.JSON(LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		MemberID:    member.ID,
	})
}

func (ac *AuthController) GetMember(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var member models.Member
	if err := ac.DB.First(&member, userID).Error; err != nil {
		return utils.NotFound(c, "Member not found")
	}

	return c.JSON(fiber.Map{
		"id":         member.ID,
		"email":      member.Email,
		"created_at": member.CreatedAt,
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if err := ac.Sessions.Delete(c.Context(), userID); err != nil {
		ac.Log.Error("delete session", "error", err, "member_id", userID)
		return utils.InternalServerError(c, "Could not revoke session")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
