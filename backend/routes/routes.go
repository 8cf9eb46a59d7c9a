package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/controllers"
	"project/backend/logger"
	"project/backend/middleware"
	"project/backend/realtime"
	"project/backend/session"
	"project/backend/workflow"
)

// Deps carries the process-wide clients handlers depend on. Everything
// is constructed once at startup and passed in; nothing is a package
// global.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions session.Store
	Hub      *realtime.Hub
	Events   realtime.Notifier
	Workflow workflow.Notifier
	Log      *logger.Logger
}

func SetupRoutes(app *fiber.App, deps Deps) {
	authMiddleware := middleware.AuthMiddleware(deps.Cfg, deps.Sessions)

	// Member routes
	authController := controllers.NewAuthController(deps.DB, deps.Cfg, deps.Sessions, deps.Log)
	member := app.Group("/api/v1/member")
	member.Post("/signup", authController.Signup)
	member.Post("/login", authController.Login)
	member.Get("/", authMiddleware, authController.GetMember)
	member.Post("/logout", authMiddleware, authController.Logout)

	// Chapter routes + generation webhooks
	chapterController := controllers.NewChapterController(deps.DB, deps.Cfg, deps.Events, deps.Workflow, deps.Log)
	chapter := app.Group("/api/v1/chapter")
	chapter.Post("/", chapterController.CreateChapter)
	chapter.Get("/", chapterController.ListChapters)
	chapter.Get("/:id/learning", chapterController.GetLearningPage)
	chapter.Get("/:id/events", realtime.StreamHandler(deps.Hub))
	chapter.Post("/:id/concept-finish", chapterController.ConceptFinish)
	chapter.Post("/:id/exercise-finish", chapterController.ExerciseFinish)
	chapter.Post("/:id/quiz-finish", chapterController.QuizFinish)

	// Concept routes
	conceptController := controllers.NewConceptController(deps.DB, deps.Cfg, deps.Log)
	concept := app.Group("/api/v1/concept", authMiddleware)
	concept.Get("/:id", conceptController.GetConcept)
	concept.Patch("/:id", conceptController.UpdateConcept)

	// Exercise routes
	exerciseController := controllers.NewExerciseController(deps.DB, deps.Cfg, deps.Log)
	exercise := app.Group("/api/v1/exercise", authMiddleware)
	exercise.Get("/:id", exerciseController.GetExercise)
	exercise.Patch("/:id", exerciseController.UpdateExercise)

	// Quiz routes + grading webhook
	quizController := controllers.NewQuizController(deps.DB, deps.Cfg, deps.Events, deps.Workflow, deps.Log)
	quiz := app.Group("/api/v1/quiz")
	quiz.Get("/:id", authMiddleware, quizController.GetQuiz)
	quiz.Post("/:id/submit", authMiddleware, quizController.SubmitQuiz)
	chapter.Post("/:id/answer-finish", quizController.AnswerFinish)

	// Course routes
	courseController := controllers.NewCourseController(deps.DB, deps.Cfg, deps.Log)
	course := app.Group("/api/v1/course")
	course.Get("/", courseController.ListCourses)
	course.Post("/", courseController.CreateCourse)
	course.Get("/:id", courseController.GetCourse)
}
