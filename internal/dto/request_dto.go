package dto

import "github.com/rakeshranjan410/paperplane-api/internal/model"

// UploadQuestionsRequest carries a batch of questions for sequential upload.
type UploadQuestionsRequest struct {
	Questions []model.Question `json:"questions" binding:"required,min=1,dive"`
}

// DeleteQuestionsRequest carries the store-assigned identifiers to bulk
// delete.
type DeleteQuestionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}
