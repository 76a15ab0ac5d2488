package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rakeshranjan410/paperplane-api/internal/dto"
	"github.com/rakeshranjan410/paperplane-api/internal/model"
)

// stubUploadService returns a canned result for UploadQuestion.
type stubUploadService struct {
	result *dto.UploadResult
}

func (s stubUploadService) UploadQuestion(context.Context, *model.Question) *dto.UploadResult {
	return s.result
}

func (s stubUploadService) UploadQuestions(context.Context, []model.Question) *dto.BatchResult {
	return &dto.BatchResult{}
}

func TestUploadQuestionStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		result     *dto.UploadResult
		wantStatus int
	}{
		{
			name:       "success",
			result:     &dto.UploadResult{Success: true, Message: "Question q1 uploaded successfully"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate",
			result:     &dto.UploadResult{Success: false, Duplicate: true, Message: "Question with id q1 already exists"},
			wantStatus: http.StatusConflict,
		},
		{
			// A rollback message may quote a duplicate-key fault from a
			// concurrent writer; only the typed flag selects the 409.
			name:       "rolled back insert mentioning duplicate",
			result:     &dto.UploadResult{Success: false, Message: "Upload failed: question id already exists: q1. All changes have been rolled back."},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/questions/upload",
				strings.NewReader(`{"id":"q1","type":"integer","answer":4}`))
			ctx.Request.Header.Set("Content-Type", "application/json")

			ctrl := NewQuestionController(stubUploadService{result: tc.result}, nil)
			ctrl.UploadQuestion(ctx)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestValidateQuestionPerType(t *testing.T) {
	cases := []struct {
		name    string
		q       model.Question
		wantErr bool
	}{
		{
			name: "single with options",
			q: model.Question{ID: "q1", Type: model.TypeSingle,
				Options: []model.Option{{Text: "A"}, {Text: "B"}}},
		},
		{
			name:    "single with one option",
			q:       model.Question{ID: "q1", Type: model.TypeSingle, Options: []model.Option{{Text: "A"}}},
			wantErr: true,
		},
		{
			name:    "multiple without options",
			q:       model.Question{ID: "q2", Type: model.TypeMultiple},
			wantErr: true,
		},
		{
			name: "comprehension complete",
			q: model.Question{ID: "q3", Type: model.TypeComprehension,
				Passage:   &model.Passage{Text: "passage"},
				Questions: []model.SubQuestion{{Type: model.TypeSingle}}},
		},
		{
			name: "comprehension without passage",
			q: model.Question{ID: "q3", Type: model.TypeComprehension,
				Questions: []model.SubQuestion{{Type: model.TypeSingle}}},
			wantErr: true,
		},
		{
			name: "matrix without sub-questions",
			q: model.Question{ID: "q4", Type: model.TypeMatrix,
				Passage: &model.Passage{Text: "passage"}},
			wantErr: true,
		},
		{
			name: "integer with answer",
			q:    model.Question{ID: "q5", Type: model.TypeInteger, Answer: 42},
		},
		{
			name:    "integer without answer",
			q:       model.Question{ID: "q5", Type: model.TypeInteger},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateQuestion(&tc.q)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
