package controller

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github/itish2003/titanic/models"
	"github/itish2003/titanic/services"
)

type formPage struct {
	Question  string
	Answer    string
	ImageURL  template.URL
	Error     string
	Questions []models.SupportedQuestion
	Dataset   models.DatasetSummaryResponse
}

// FormController serves the HTML page where users type a question and see the answer.
type FormController struct {
	queryService services.QueryService
}

func NewFormController(service services.QueryService) *FormController {
	return &FormController{queryService: service}
}

// Index is the Gin handler for GET /.
func (c *FormController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", formPage{
		Questions: c.queryService.SupportedQuestions(),
		Dataset:   c.queryService.DatasetSummary(),
	})
}

// Ask is the Gin handler for POST /.
func (c *FormController) Ask(ctx *gin.Context) {
	page := formPage{
		Question:  strings.TrimSpace(ctx.PostForm("question")),
		Questions: c.queryService.SupportedQuestions(),
		Dataset:   c.queryService.DatasetSummary(),
	}
	if page.Question == "" {
		page.Error = "Please enter a question."
		ctx.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	answer, err := c.queryService.Ask(ctx.Request.Context(), page.Question)
	if err != nil {
		page.Error = "Something went wrong while answering your question."
		ctx.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}

	page.Answer = answer.Text
	if answer.HasImage() {
		page.ImageURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(answer.Image))
	}
	ctx.HTML(http.StatusOK, "index.html", page)
}
