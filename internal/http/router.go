// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/http/handlers"
	"github.com/shirinfathima/voyabot/internal/http/middleware"
)

func registerRoutes(r *gin.Engine, deps ServerDeps, log *zap.Logger) {
	r.Use(middleware.Logging(log), middleware.Recovery(log), corsMiddleware(deps.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Voyabot backend is running!"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	accountHandler := handlers.NewAccountHandler(deps.Accounts)
	r.POST("/signup", accountHandler.Signup)
	r.POST("/login", accountHandler.Login)

	questionnaireHandler := handlers.NewQuestionnaireHandler(deps.Questionnaire)
	r.GET("/get_questions", questionnaireHandler.Questions)

	placesHandler := handlers.NewPlacesHandler(deps.Places)
	r.GET("/underrated_places", placesHandler.Underrated)

	authed := r.Group("/", middleware.Auth(deps.Verifier))

	chatHandler := handlers.NewChatHandler(deps.Chat)
	authed.POST("/chat", chatHandler.Chat)

	authed.POST("/submit_questionnaire", questionnaireHandler.Submit)
	authed.GET("/get_responses", questionnaireHandler.Responses)

	reviewHandler := handlers.NewReviewHandler(deps.Reviews)
	authed.GET("/get_reviews", reviewHandler.List)
	authed.POST("/submit_review", reviewHandler.Submit)
	authed.POST("/like_dislike_review", reviewHandler.React)
	authed.POST("/reply_review", reviewHandler.Reply)
	authed.DELETE("/delete_reply", reviewHandler.DeleteReply)

	locationHandler := handlers.NewLocationHandler(deps.Locations)
	authed.POST("/resolve_location", locationHandler.Resolve)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	return cors.New(cfg)
}
