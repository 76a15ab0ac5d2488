package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rakeshranjan410/paperplane-api/internal/dto"
	"github.com/rakeshranjan410/paperplane-api/internal/model"
	"github.com/rakeshranjan410/paperplane-api/internal/repository"
	"github.com/rakeshranjan410/paperplane-api/internal/storage"
)

// migrateWorkers bounds the concurrent image uploads for one question.
const migrateWorkers = 4

// UploadService drives the end-to-end question upload: duplicate check,
// image migration, reference rewrite, persistence, and compensating rollback
// when persistence faults.
type UploadService interface {
	UploadQuestion(ctx context.Context, question *model.Question) *dto.UploadResult
	UploadQuestions(ctx context.Context, questions []model.Question) *dto.BatchResult
}

type uploadService struct {
	repo  repository.QuestionRepository
	store storage.ObjectStore
}

func NewUploadService(repo repository.QuestionRepository, store storage.ObjectStore) UploadService {
	return &uploadService{repo: repo, store: store}
}

// undoAction is one compensating step accumulated as the upload makes
// progress, executed in reverse order on failure.
type undoAction interface {
	Undo(ctx context.Context) error
	Describe() string
}

type deleteObject struct {
	store storage.ObjectStore
	key   string
}

func (a deleteObject) Undo(ctx context.Context) error { return a.store.Delete(ctx, a.key) }
func (a deleteObject) Describe() string               { return "delete object " + a.key }

type deleteDocument struct {
	repo    repository.QuestionRepository
	mongoID string
}

func (a deleteDocument) Undo(ctx context.Context) error { return a.repo.Delete(ctx, a.mongoID) }
func (a deleteDocument) Describe() string               { return "delete document " + a.mongoID }

// migration is the folded outcome of step 2: the source→object URL record for
// successful uploads, the created keys and URLs in a stable order, and the
// per-reference failures that were tolerated. err carries a fatal gateway
// fault (an unconfigured object store) that must fail the whole upload
// rather than be tolerated per reference.
type migration struct {
	record map[string]string
	keys   []string
	urls   []string
	failed []dto.FailedImage
	err    error
}

// migrateImages uploads every reference with a bounded worker pool. A failure
// for one reference never aborts the others; it is folded into the failure
// list instead. Results are indexed by position first so the fold is
// independent of completion order.
func (s *uploadService) migrateImages(ctx context.Context, refs []string) migration {
	m := migration{record: make(map[string]string, len(refs))}
	if len(refs) == 0 {
		return m
	}

	type outcome struct {
		objectURL string
		err       error
	}
	outcomes := make([]outcome, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(migrateWorkers)
	var mu sync.Mutex
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			objectURL, err := s.store.Upload(gctx, ref)
			mu.Lock()
			outcomes[i] = outcome{objectURL: objectURL, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for i, ref := range refs {
		if outcomes[i].err != nil {
			// A missing gateway configuration is not a per-image condition.
			if errors.Is(outcomes[i].err, storage.ErrConfig) {
				if m.err == nil {
					m.err = outcomes[i].err
				}
				continue
			}
			log.Warn().Err(outcomes[i].err).Str("url", ref).Msg("Image migration failed, keeping original URL")
			m.failed = append(m.failed, dto.FailedImage{URL: ref, Error: outcomes[i].err.Error()})
			continue
		}
		m.record[ref] = outcomes[i].objectURL
		m.keys = append(m.keys, s.store.KeyFromURL(outcomes[i].objectURL))
		m.urls = append(m.urls, outcomes[i].objectURL)
	}
	return m
}

func (s *uploadService) UploadQuestion(ctx context.Context, question *model.Question) *dto.UploadResult {
	id := question.ID.String()

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Duplicate check failed")
		return &dto.UploadResult{Success: false, Message: fmt.Sprintf("Upload failed: %v", err)}
	}
	if exists {
		log.Warn().Str("id", id).Msg("Rejected duplicate question upload")
		return &dto.UploadResult{Success: false, Duplicate: true, Message: fmt.Sprintf("Question with id %s already exists", id)}
	}

	var undo []undoAction

	mig := s.migrateImages(ctx, extractImageRefs(question))
	for _, key := range mig.keys {
		undo = append(undo, deleteObject{store: s.store, key: key})
	}
	if mig.err != nil {
		return s.rollback(ctx, undo, id, mig.err)
	}

	rewritten, err := rewriteImageRefs(question, mig.record)
	if err != nil {
		return s.rollback(ctx, undo, id, err)
	}

	mongoID, err := s.repo.Insert(ctx, rewritten, strings.TrimSpace(question.ImageURL))
	if err != nil {
		return s.rollback(ctx, undo, id, err)
	}
	undo = append(undo, deleteDocument{repo: s.repo, mongoID: mongoID})

	message := fmt.Sprintf("Question %s uploaded successfully", id)
	if n := len(mig.failed); n > 0 {
		message = fmt.Sprintf("%s, but %d image(s) failed to migrate", message, n)
	}
	log.Info().Str("id", id).Str("mongoId", mongoID).Int("images", len(mig.urls)).Int("failedImages", len(mig.failed)).Msg("Question uploaded")

	return &dto.UploadResult{
		Success:      true,
		Message:      message,
		S3URLs:       mig.urls,
		MongoID:      mongoID,
		FailedImages: mig.failed,
	}
}

// rollback executes the accumulated undo actions in reverse. Individual
// failures are logged and skipped so every remaining action still runs, and
// the undo loop is detached from request cancellation so a client disconnect
// cannot leak migrated objects.
func (s *uploadService) rollback(ctx context.Context, undo []undoAction, id string, cause error) *dto.UploadResult {
	ctx = context.WithoutCancel(ctx)
	log.Error().Err(cause).Str("id", id).Int("actions", len(undo)).Msg("Upload failed, rolling back")
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i].Undo(ctx); err != nil {
			log.Error().Err(err).Str("id", id).Str("action", undo[i].Describe()).Msg("Rollback action failed")
		}
	}
	return &dto.UploadResult{
		Success: false,
		Message: fmt.Sprintf("Upload failed: %v. All changes have been rolled back.", cause),
	}
}

func (s *uploadService) UploadQuestions(ctx context.Context, questions []model.Question) *dto.BatchResult {
	batch := &dto.BatchResult{Results: make([]dto.UploadResult, 0, len(questions))}
	for i := range questions {
		result := s.UploadQuestion(ctx, &questions[i])
		if result.Success {
			batch.Successful++
		} else {
			batch.Failed++
		}
		batch.Results = append(batch.Results, *result)
	}
	log.Info().Int("successful", batch.Successful).Int("failed", batch.Failed).Msg("Batch upload finished")
	return batch
}
