package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rakeshranjan410/paperplane-api/internal/dto"
	"github.com/rakeshranjan410/paperplane-api/internal/model"
	"github.com/rakeshranjan410/paperplane-api/internal/repository"
	"github.com/rakeshranjan410/paperplane-api/internal/service"
)

type QuestionController struct {
	uploadService   service.UploadService
	questionService service.QuestionService
}

func NewQuestionController(uploadService service.UploadService, questionService service.QuestionService) *QuestionController {
	return &QuestionController{uploadService: uploadService, questionService: questionService}
}

// validateQuestion enforces the per-type shape requirements that gin binding
// tags cannot express.
func validateQuestion(q *model.Question) error {
	switch q.Type {
	case model.TypeSingle, model.TypeMultiple:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %s of type %q requires at least 2 options", q.ID, q.Type)
		}
	case model.TypeComprehension, model.TypeMatrix:
		if q.Passage == nil {
			return fmt.Errorf("question %s of type %q requires a passage", q.ID, q.Type)
		}
		if len(q.Questions) == 0 {
			return fmt.Errorf("question %s of type %q requires at least one sub-question", q.ID, q.Type)
		}
	case model.TypeInteger:
		if q.Answer == nil {
			return fmt.Errorf("question %s of type %q requires an answer", q.ID, q.Type)
		}
	}
	return nil
}

// UploadQuestion godoc
// @Summary Upload a single question
// @Description Migrates the question's images to S3, rewrites their URLs and persists the document to MongoDB. Duplicate ids are rejected without writing anything.
// @Tags Questions
// @Accept json
// @Produce json
// @Param question body model.Question true "Question to upload"
// @Success 201 {object} dto.UploadResult "Question uploaded (possibly with failed image migrations reported)"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.UploadResult "Question id already exists"
// @Failure 500 {object} dto.UploadResult "Upload failed and was rolled back"
// @Router /questions/upload [post]
func (c *QuestionController) UploadQuestion(ctx *gin.Context) {
	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		log.Warn().Err(err).Msg("UploadQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := validateQuestion(&question); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question", Details: []string{err.Error()}})
		return
	}

	result := c.uploadService.UploadQuestion(ctx.Request.Context(), &question)
	switch {
	case result.Success:
		ctx.JSON(http.StatusCreated, result)
	case result.Duplicate:
		ctx.JSON(http.StatusConflict, result)
	default:
		ctx.JSON(http.StatusInternalServerError, result)
	}
}

// UploadQuestions godoc
// @Summary Upload multiple questions
// @Description Runs the single-question upload sequentially for each entry. One question failing never aborts the batch.
// @Tags Questions
// @Accept json
// @Produce json
// @Param questions body dto.UploadQuestionsRequest true "Questions to upload"
// @Success 200 {object} dto.BatchResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /questions/upload-multiple [post]
func (c *QuestionController) UploadQuestions(ctx *gin.Context) {
	var req dto.UploadQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UploadQuestions: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	var details []string
	for i := range req.Questions {
		if err := validateQuestion(&req.Questions[i]); err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid questions", Details: details})
		return
	}

	ctx.JSON(http.StatusOK, c.uploadService.UploadQuestions(ctx.Request.Context(), req.Questions))
}

// GetQuestions godoc
// @Summary List questions
// @Description Lists stored questions, optionally filtered by subject, chapter and section. All provided filters must match.
// @Tags Questions
// @Produce json
// @Param subject query string false "Subject filter"
// @Param chapter query string false "Chapter filter"
// @Param section query string false "Section filter"
// @Success 200 {array} model.StoredQuestion
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	filters := repository.Filters{
		Subject: ctx.Query("subject"),
		Chapter: ctx.Query("chapter"),
		Section: ctx.Query("section"),
	}
	questions, err := c.questionService.GetAllQuestions(ctx.Request.Context(), filters)
	if err != nil {
		log.Error().Err(err).Msg("GetQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions", Details: []string{err.Error()}})
		return
	}
	if questions == nil {
		questions = []model.StoredQuestion{}
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetFilterValues godoc
// @Summary Distinct filter values
// @Description Returns the sorted distinct subjects, chapters and sections across all questions, for filter dropdowns.
// @Tags Questions
// @Produce json
// @Success 200 {object} model.FilterValues
// @Failure 500 {object} dto.ErrorResponse
// @Router /filters [get]
func (c *QuestionController) GetFilterValues(ctx *gin.Context) {
	values, err := c.questionService.GetFilterValues(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("GetFilterValues: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load filter values", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, values)
}

// GetQuestion godoc
// @Summary Get one question by its logical id
// @Tags Questions
// @Produce json
// @Param id path string true "Logical question id"
// @Success 200 {object} model.StoredQuestion
// @Failure 404 {object} dto.ErrorResponse "No question with that id"
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id := ctx.Param("id")
	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("GetQuestion: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load question", Details: []string{err.Error()}})
		return
	}
	if question == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fmt.Sprintf("No question with id %s", id)})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary Replace a stored question
// @Description Replaces all fields of the document addressed by its store-assigned identifier.
// @Tags Questions
// @Accept json
// @Produce json
// @Param id path string true "Store-assigned identifier"
// @Param question body model.Question true "Replacement question"
// @Success 200 {object} model.Question
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "No document with that identifier"
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	mongoID := ctx.Param("id")

	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		log.Warn().Err(err).Msg("UpdateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := validateQuestion(&question); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question", Details: []string{err.Error()}})
		return
	}

	if err := c.questionService.UpdateQuestion(ctx.Request.Context(), mongoID, &question); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a stored question
// @Tags Questions
// @Produce json
// @Param id path string true "Store-assigned identifier"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "No document with that identifier"
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	mongoID := ctx.Param("id")
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), mongoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete question", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteQuestions godoc
// @Summary Delete multiple stored questions
// @Tags Questions
// @Accept json
// @Produce json
// @Param ids body dto.DeleteQuestionsRequest true "Store-assigned identifiers to delete"
// @Success 200 {object} dto.DeleteManyResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse
// @Router /questions/delete-multiple [post]
func (c *QuestionController) DeleteQuestions(ctx *gin.Context) {
	var req dto.DeleteQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("DeleteQuestions: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	deleted, err := c.questionService.DeleteQuestions(ctx.Request.Context(), req.IDs)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.DeleteManyResult{Deleted: deleted})
}
