package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rakeshranjan410/paperplane-api/internal/model"
	"github.com/rakeshranjan410/paperplane-api/internal/repository"
)

// QuestionService exposes the plain read/update/delete operations over the
// question collection. No orchestration happens here; every method is a
// pass-through to the repository.
type QuestionService interface {
	GetAllQuestions(ctx context.Context, f repository.Filters) ([]model.StoredQuestion, error)
	GetQuestion(ctx context.Context, id string) (*model.StoredQuestion, error)
	GetFilterValues(ctx context.Context) (*model.FilterValues, error)
	UpdateQuestion(ctx context.Context, mongoID string, question *model.Question) error
	DeleteQuestion(ctx context.Context, mongoID string) error
	DeleteQuestions(ctx context.Context, mongoIDs []string) (int64, error)
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) GetAllQuestions(ctx context.Context, f repository.Filters) ([]model.StoredQuestion, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *questionService) GetQuestion(ctx context.Context, id string) (*model.StoredQuestion, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *questionService) GetFilterValues(ctx context.Context) (*model.FilterValues, error) {
	return s.repo.DistinctFilterValues(ctx)
}

func (s *questionService) UpdateQuestion(ctx context.Context, mongoID string, question *model.Question) error {
	if err := s.repo.Update(ctx, mongoID, question); err != nil {
		log.Error().Err(err).Str("mongoId", mongoID).Msg("Failed to update question")
		return err
	}
	return nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, mongoID string) error {
	if err := s.repo.Delete(ctx, mongoID); err != nil {
		log.Error().Err(err).Str("mongoId", mongoID).Msg("Failed to delete question")
		return err
	}
	return nil
}

func (s *questionService) DeleteQuestions(ctx context.Context, mongoIDs []string) (int64, error) {
	deleted, err := s.repo.DeleteMany(ctx, mongoIDs)
	if err != nil {
		log.Error().Err(err).Int("requested", len(mongoIDs)).Msg("Failed to delete questions")
		return 0, err
	}
	return deleted, nil
}
