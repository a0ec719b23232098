package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "instructo-gateway/internal/app"
	"instructo-gateway/internal/bootstrap"
	"instructo-gateway/internal/cache"
	"instructo-gateway/internal/downstream"
	"instructo-gateway/internal/platform/rabbitmq"
	"instructo-gateway/internal/repository"
	"instructo-gateway/internal/transport/http/handler"
	"instructo-gateway/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	submissionRepo := repository.NewSubmissionRepository(app.MySQL)

	accountService := appsvc.NewAccountService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	executorClient := downstream.NewExecutorClient(
		app.Config.Executor.BaseURL,
		time.Duration(app.Config.Executor.TimeoutSeconds)*time.Second,
	)
	submissionPublisher := rabbitmq.NewSubmissionPublisher(app.MQConn, app.Config.RabbitMQ.SubmissionPersistQueue)
	executorService := appsvc.NewExecutorService(executorClient, submissionPublisher, submissionRepo)

	tutorClient := downstream.NewTutorClient(
		app.Config.Tutor.BaseURL,
		time.Duration(app.Config.Tutor.TimeoutSeconds)*time.Second,
	)
	quizCache := cache.NewQuizCache(app.Redis, time.Duration(app.Config.Redis.QuizTTLSeconds)*time.Second)
	tutorService := appsvc.NewTutorService(tutorClient, quizCache)

	authHandler := handler.NewAuthHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	executeHandler := handler.NewExecuteHandler(executorService)
	tutorHandler := handler.NewTutorHandler(tutorService)

	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)

	authed := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	userGroup := router.Group("/user", authed)
	userGroup.GET("/me", userHandler.Me)
	userGroup.PUT("/update", userHandler.Update)
	userGroup.DELETE("/delete", userHandler.Delete)
	userGroup.POST("/addLanguage", userHandler.AddLanguage)
	userGroup.DELETE("/removeLanguage", userHandler.RemoveLanguage)

	codeGroup := router.Group("/code", authed)
	codeGroup.POST("/submit/:language", executeHandler.Submit)

	router.GET("/submissions", authed, executeHandler.ListSubmissions)

	tutorGroup := router.Group("/api/tutor", authed)
	tutorGroup.GET("/quiz/generate", tutorHandler.GenerateQuiz)
	tutorGroup.POST("/quiz/evaluate", tutorHandler.EvaluateQuiz)
	tutorGroup.POST("/code/review", tutorHandler.ReviewCode)
	tutorGroup.POST("/code/chat", tutorHandler.ChatWithCode)
	tutorGroup.POST("/challenge/incomplete-code", tutorHandler.GenerateIncompleteCode)
	tutorGroup.POST("/challenge/output-based", tutorHandler.GenerateOutputChallenge)
	tutorGroup.POST("/challenge/problem-solving", tutorHandler.GenerateProblemSolvingChallenge)
	tutorGroup.POST("/challenge/submit-solution", tutorHandler.SubmitSolution)

	return router
}
