package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/forumhub/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	User      *apiHandler.UserHandler
	Question  *apiHandler.QuestionHandler
	Answer    *apiHandler.AnswerHandler
	Vote      *apiHandler.VoteHandler
	Tag       *apiHandler.TagHandler
	Upload    *apiHandler.UploadHandler
	Moderator *apiHandler.ModeratorHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Health)
	r.GET("/uploads/{name}", handlers.Upload.Serve)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Registration and public reads
	r.POST("/api/v1/users", handlers.User.Register)
	r.GET("/api/v1/users", handlers.User.List)
	r.GET("/api/v1/users/{id}", handlers.User.Get)
	r.GET("/api/v1/questions", handlers.Question.List)
	r.GET("/api/v1/questions/{id}", handlers.Question.Get)
	r.GET("/api/v1/questions/{id}/answers", handlers.Answer.ListForQuestion)
	r.GET("/api/v1/questions/{id}/tags", handlers.Tag.ListForQuestion)
	r.GET("/api/v1/answers/{id}", handlers.Answer.Get)
	r.GET("/api/v1/tags", handlers.Tag.List)

	// Protected routes
	r.PUT("/api/v1/users/{id}", authMiddleware(handlers.User.Update))
	r.DELETE("/api/v1/users/{id}", authMiddleware(handlers.User.Delete))

	r.POST("/api/v1/questions", authMiddleware(handlers.Question.Create))
	r.PUT("/api/v1/questions/{id}", authMiddleware(handlers.Question.Update))
	r.DELETE("/api/v1/questions/{id}", authMiddleware(handlers.Question.Delete))
	r.POST("/api/v1/questions/{id}/accept/{answerId}", authMiddleware(handlers.Question.AcceptAnswer))
	r.POST("/api/v1/questions/{id}/vote", authMiddleware(handlers.Vote.VoteQuestion))

	r.POST("/api/v1/questions/{id}/answers", authMiddleware(handlers.Answer.Create))
	r.PUT("/api/v1/answers/{id}", authMiddleware(handlers.Answer.Update))
	r.DELETE("/api/v1/answers/{id}", authMiddleware(handlers.Answer.Delete))
	r.POST("/api/v1/answers/{id}/vote", authMiddleware(handlers.Vote.VoteAnswer))

	r.POST("/api/v1/tags", authMiddleware(handlers.Tag.Create))
	r.POST("/api/v1/questions/{id}/tags", authMiddleware(handlers.Tag.AddToQuestion))
	r.DELETE("/api/v1/questions/{id}/tags/{name}", authMiddleware(handlers.Tag.RemoveFromQuestion))

	r.POST("/api/v1/uploads", authMiddleware(handlers.Upload.Upload))
	r.DELETE("/api/v1/uploads/{name}", authMiddleware(handlers.Upload.Delete))

	r.POST("/api/v1/moderation/users/{id}/ban", authMiddleware(handlers.Moderator.Ban))
	r.POST("/api/v1/moderation/users/{id}/unban", authMiddleware(handlers.Moderator.Unban))
	r.POST("/api/v1/moderation/maintenance/phone-formats", authMiddleware(handlers.Moderator.RunPhoneFormats))
	r.POST("/api/v1/moderation/maintenance/test-users", authMiddleware(handlers.Moderator.RunTestUserCleanup))

	return r
}
