package controller

import (
	"github.com/gin-gonic/gin"

	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/services"
	"github/itish2003/titanic/web"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(queryService services.QueryService, log logger.ILogger, allowedOrigins string) *gin.Engine {
	queryController := NewQueryController(queryService)
	formController := NewFormController(queryService)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORS(allowedOrigins))
	router.SetHTMLTemplate(web.Templates())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Titanic Query API",
			"version": "1.0.0",
		})
	})

	router.GET("/", formController.Index)
	router.POST("/", formController.Ask)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/query", queryController.Query)
		apiV1.POST("/query", queryController.Query)
		apiV1.GET("/query/image", queryController.QueryImage)
		apiV1.GET("/questions", queryController.GetQuestions)
		apiV1.GET("/dataset", queryController.GetDataset)
	}

	return router
}
