package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakeshranjan410/paperplane-api/config"
	"github.com/rakeshranjan410/paperplane-api/internal/model"
	"github.com/rakeshranjan410/paperplane-api/internal/repository"
	"github.com/rakeshranjan410/paperplane-api/internal/storage"
)

// fakeRepo is an in-memory stand-in for the Mongo gateway.
type fakeRepo struct {
	mu        sync.Mutex
	existing  map[string]bool
	insertErr error

	inserted         []model.Question
	insertedOriginal []string
	deleted          []string
	nextID           int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{existing: make(map[string]bool)}
}

func (r *fakeRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.existing[id], nil
}

func (r *fakeRepo) Insert(_ context.Context, q *model.Question, originalImageURL string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.inserted = append(r.inserted, *q)
	r.insertedOriginal = append(r.insertedOriginal, originalImageURL)
	r.existing[q.ID.String()] = true
	r.nextID++
	return fmt.Sprintf("65f000000000000000000%03d", r.nextID), nil
}

func (r *fakeRepo) Update(context.Context, string, *model.Question) error { return nil }

func (r *fakeRepo) Delete(_ context.Context, mongoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mongoID == "" {
		return nil
	}
	r.deleted = append(r.deleted, mongoID)
	return nil
}

func (r *fakeRepo) DeleteMany(context.Context, []string) (int64, error) { return 0, nil }

func (r *fakeRepo) FindAll(context.Context, repository.Filters) ([]model.StoredQuestion, error) {
	return nil, nil
}

func (r *fakeRepo) FindByID(context.Context, string) (*model.StoredQuestion, error) {
	return nil, nil
}

func (r *fakeRepo) DistinctFilterValues(context.Context) (*model.FilterValues, error) {
	return &model.FilterValues{}, nil
}

func (r *fakeRepo) EnsureIndexes(context.Context) error { return nil }

// fakeObjectKey is the deterministic key the fake store writes a source URL
// under, recoverable through KeyFromURL.
func fakeObjectKey(sourceURL string) string {
	slug := strings.NewReplacer("://", "-", "/", "-").Replace(sourceURL)
	return "questions/" + slug + ".jpg"
}

// fakeStore records uploads and deletion attempts; sources listed in failFor
// fail their migration, keys listed in failDelete fail their deletion.
type fakeStore struct {
	mu         sync.Mutex
	failFor    map[string]bool
	failDelete map[string]bool

	uploads []string
	deleted []string
}

func newFakeStore(failFor ...string) *fakeStore {
	fail := make(map[string]bool, len(failFor))
	for _, f := range failFor {
		fail[f] = true
	}
	return &fakeStore{failFor: fail, failDelete: make(map[string]bool)}
}

func (s *fakeStore) Upload(_ context.Context, sourceURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[sourceURL] {
		return "", errors.New("image fetch failed: status 404")
	}
	s.uploads = append(s.uploads, sourceURL)
	return "https://bucket.s3.test/" + fakeObjectKey(sourceURL), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == "" {
		return nil
	}
	s.deleted = append(s.deleted, key)
	if s.failDelete[key] {
		return errors.New("delete rejected")
	}
	return nil
}

func (s *fakeStore) KeyFromURL(objectURL string) string {
	u, err := url.Parse(objectURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func TestUploadQuestionSuccess(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:      "q1",
		Type:    model.TypeSingle,
		Content: &model.Content{Text: "...", Images: []string{"http://x/a.png"}},
		Options: []model.Option{{Text: "A"}, {Text: "B"}},
	}
	result := svc.UploadQuestion(context.Background(), q)

	require.True(t, result.Success, "message: %s", result.Message)
	assert.Len(t, result.S3URLs, 1)
	assert.NotEmpty(t, result.MongoID)
	assert.Empty(t, result.FailedImages)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, result.S3URLs[0], repo.inserted[0].Content.Images[0], "persisted question must carry the migrated URL")
}

func TestUploadQuestionDuplicateRejectedWithoutWrites(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:      "q1",
		Type:    model.TypeSingle,
		Content: &model.Content{Text: "...", Images: []string{"http://x/a.png"}},
	}
	first := svc.UploadQuestion(context.Background(), q)
	require.True(t, first.Success)

	second := svc.UploadQuestion(context.Background(), q)
	assert.False(t, second.Success)
	assert.Contains(t, second.Message, "q1")
	assert.Contains(t, second.Message, "already exists")

	assert.Len(t, repo.inserted, 1, "no second document write")
	assert.Len(t, store.uploads, 1, "no second image write")
	assert.Empty(t, store.deleted, "duplicate rejection is not a rollback case")
}

func TestUploadQuestionToleratesPartialImageFailure(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore("http://x/b.png")
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:   "q2",
		Type: model.TypeSingle,
		Content: &model.Content{
			Images: []string{"http://x/a.png", "http://x/b.png", "http://x/c.png"},
		},
	}
	result := svc.UploadQuestion(context.Background(), q)

	require.True(t, result.Success)
	assert.Len(t, result.S3URLs, 2)
	require.Len(t, result.FailedImages, 1)
	assert.Equal(t, "http://x/b.png", result.FailedImages[0].URL)
	assert.Contains(t, result.Message, "1 image")

	require.Len(t, repo.inserted, 1)
	persisted := repo.inserted[0].Content.Images
	assert.Equal(t, "http://x/b.png", persisted[1], "failed reference keeps its original URL")
	assert.True(t, strings.HasPrefix(persisted[0], "https://bucket.s3.test/"))
	assert.True(t, strings.HasPrefix(persisted[2], "https://bucket.s3.test/"))
}

func TestUploadQuestionRollsBackOnPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("insert rejected")
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:   "q3",
		Type: model.TypeSingle,
		Content: &model.Content{
			Images: []string{"http://x/a.png", "http://x/b.png", "http://x/c.png"},
		},
	}
	result := svc.UploadQuestion(context.Background(), q)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "insert rejected")
	assert.Contains(t, result.Message, "rolled back")

	assert.Len(t, store.deleted, 3, "every migrated object must be deleted")
	assert.Empty(t, repo.deleted, "no document delete when no store id was obtained")
}

func TestUploadQuestionFailsFastOnUnconfiguredStore(t *testing.T) {
	repo := newFakeRepo()
	store := storage.NewS3Store(config.NewProvider(&config.Config{}))
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:      "q-cfg",
		Type:    model.TypeSingle,
		Content: &model.Content{Text: "...", Images: []string{"http://x/a.png"}},
	}
	result := svc.UploadQuestion(context.Background(), q)

	assert.False(t, result.Success, "a missing gateway configuration must fail the upload")
	assert.Contains(t, result.Message, "configuration incomplete")
	assert.Empty(t, result.FailedImages, "configuration faults are not per-image failures")
	assert.Empty(t, repo.inserted, "nothing may be persisted")
}

func TestRollbackContinuesPastDeleteFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("insert rejected")
	store := newFakeStore()
	store.failDelete[fakeObjectKey("http://x/b.png")] = true
	svc := NewUploadService(repo, store)

	q := &model.Question{
		ID:   "q-undo",
		Type: model.TypeSingle,
		Content: &model.Content{
			Images: []string{"http://x/a.png", "http://x/b.png", "http://x/c.png"},
		},
	}
	result := svc.UploadQuestion(context.Background(), q)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "rolled back")
	assert.Len(t, store.deleted, 3, "one failed deletion must not stop the remaining undo actions")
}

func TestRollbackRunsWhenRequestContextCanceled(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("insert rejected")
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := &model.Question{
		ID:   "q-cancel",
		Type: model.TypeSingle,
		Content: &model.Content{
			Images: []string{"http://x/a.png", "http://x/b.png", "http://x/c.png"},
		},
	}
	result := svc.UploadQuestion(ctx, q)

	assert.False(t, result.Success)
	assert.Len(t, store.deleted, 3, "undo actions must outlive request cancellation")
}

func TestUploadQuestionsBatchIndependence(t *testing.T) {
	repo := newFakeRepo()
	repo.existing["dup"] = true
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	questions := []model.Question{
		{ID: "a", Type: model.TypeInteger, Answer: 4},
		{ID: "dup", Type: model.TypeInteger, Answer: 2},
		{ID: "c", Type: model.TypeInteger, Answer: 7},
	}
	batch := svc.UploadQuestions(context.Background(), questions)

	assert.Equal(t, 2, batch.Successful)
	assert.Equal(t, 1, batch.Failed)
	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results[0].Success)
	assert.False(t, batch.Results[1].Success)
	assert.Contains(t, batch.Results[1].Message, "dup")
	assert.True(t, batch.Results[2].Success)
}

func TestUploadQuestionLegacyFieldBookkeeping(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStore()
	svc := NewUploadService(repo, store)

	q := &model.Question{ID: "q4", Type: model.TypeSingle, ImageURL: "http://x/legacy.png"}
	result := svc.UploadQuestion(context.Background(), q)

	require.True(t, result.Success)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "http://x/legacy.png", repo.insertedOriginal[0])
	assert.True(t, strings.HasPrefix(repo.inserted[0].ImageURL, "https://bucket.s3.test/"),
		"legacy field must carry the resolved URL in the persisted question")
}
