package controller

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github/itish2003/titanic/models"
	"github/itish2003/titanic/services"
)

// QueryController handles the HTTP requests for the question API. It depends on
// the QueryService to do the actual work.
type QueryController struct {
	queryService services.QueryService
}

func NewQueryController(service services.QueryService) *QueryController {
	return &QueryController{
		queryService: service,
	}
}

// Query is the Gin handler for GET and POST /api/v1/query.
// GET takes ?question=..., POST takes a JSON body or a form field.
func (c *QueryController) Query(ctx *gin.Context) {
	var req models.QueryTextRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request: " + err.Error(),
			RequestID: requestID(ctx),
		})
		return
	}

	answer, err := c.queryService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		// The service has already logged the cause.
		ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Failed to answer question",
			RequestID: requestID(ctx),
		})
		return
	}

	resp := models.QueryResponse{
		Response:  answer.Text,
		RequestID: requestID(ctx),
	}
	if answer.HasImage() {
		resp.Image = base64.StdEncoding.EncodeToString(answer.Image)
	}
	ctx.JSON(http.StatusOK, resp)
}

// QueryImage is the Gin handler for GET /api/v1/query/image. It returns the raw
// PNG for chart questions and 404 for everything else.
func (c *QueryController) QueryImage(ctx *gin.Context) {
	var req models.QueryTextRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request: " + err.Error(),
			RequestID: requestID(ctx),
		})
		return
	}

	answer, err := c.queryService.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Failed to answer question",
			RequestID: requestID(ctx),
		})
		return
	}
	if !answer.HasImage() {
		ctx.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     answer.Text,
			RequestID: requestID(ctx),
		})
		return
	}

	ctx.Data(http.StatusOK, "image/png", answer.Image)
}

// GetQuestions is the Gin handler for GET /api/v1/questions.
func (c *QueryController) GetQuestions(ctx *gin.Context) {
	questions := c.queryService.SupportedQuestions()
	ctx.JSON(http.StatusOK, models.SupportedQuestionsResponse{
		Count:     len(questions),
		Questions: questions,
	})
}

// GetDataset is the Gin handler for GET /api/v1/dataset.
func (c *QueryController) GetDataset(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.queryService.DatasetSummary())
}
