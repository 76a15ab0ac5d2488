package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rakeshranjan410/paperplane-api/database"
	"github.com/rakeshranjan410/paperplane-api/internal/model"
)

var (
	// ErrNotFound is returned when an update or delete addresses a
	// store identifier that matches no document.
	ErrNotFound = errors.New("question not found")
	// ErrDuplicate is returned when an insert collides with the unique
	// index on the logical question id.
	ErrDuplicate = errors.New("question id already exists")
)

// unknownSentinel is the placeholder classification value excluded from
// filter dropdowns.
const unknownSentinel = "Unknown"

// Filters is a sparse set of equality constraints for FindAll. Empty fields
// are not applied.
type Filters struct {
	Subject string
	Chapter string
	Section string
}

type QuestionRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, question *model.Question, originalImageURL string) (string, error)
	Update(ctx context.Context, mongoID string, question *model.Question) error
	Delete(ctx context.Context, mongoID string) error
	DeleteMany(ctx context.Context, mongoIDs []string) (int64, error)
	FindAll(ctx context.Context, f Filters) ([]model.StoredQuestion, error)
	FindByID(ctx context.Context, id string) (*model.StoredQuestion, error)
	DistinctFilterValues(ctx context.Context) (*model.FilterValues, error)
	EnsureIndexes(ctx context.Context) error
}

type questionRepository struct {
	db *database.Mongo
}

func NewQuestionRepository(db *database.Mongo) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Exists(ctx context.Context, id string) (bool, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return false, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("checking existence of question %q: %w", id, err)
	}
	return count > 0, nil
}

func (r *questionRepository) Insert(ctx context.Context, question *model.Question, originalImageURL string) (string, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return "", err
	}

	doc := model.StoredQuestion{
		Question:         *question,
		OriginalImageURL: originalImageURL,
		CreatedAt:        time.Now().UTC(),
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %s", ErrDuplicate, question.ID)
		}
		return "", fmt.Errorf("inserting question %q: %w", question.ID, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *questionRepository) Update(ctx context.Context, mongoID string, question *model.Question) error {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(mongoID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrNotFound, mongoID)
	}

	fields, err := updateFields(question)
	if err != nil {
		return err
	}
	res, err := coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("updating question %s: %w", mongoID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, mongoID)
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, mongoID string) error {
	if mongoID == "" {
		return nil
	}
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(mongoID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrNotFound, mongoID)
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting question %s: %w", mongoID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, mongoID)
	}
	return nil
}

func (r *questionRepository) DeleteMany(ctx context.Context, mongoIDs []string) (int64, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return 0, err
	}

	oids := make([]primitive.ObjectID, 0, len(mongoIDs))
	for _, id := range mongoIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("deleting %d questions: %w", len(oids), err)
	}
	return res.DeletedCount, nil
}

func (r *questionRepository) FindAll(ctx context.Context, f Filters) ([]model.StoredQuestion, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, buildFilter(f), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []model.StoredQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*model.StoredQuestion, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return nil, err
	}

	var question model.StoredQuestion
	err = coll.FindOne(ctx, bson.M{"id": id}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding question %q: %w", id, err)
	}
	return &question, nil
}

func (r *questionRepository) DistinctFilterValues(ctx context.Context) (*model.FilterValues, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return nil, err
	}

	values := &model.FilterValues{}
	for field, dst := range map[string]*[]string{
		"subject": &values.Subjects,
		"chapter": &values.Chapters,
		"section": &values.Sections,
	} {
		raw, err := coll.Distinct(ctx, field, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("distinct %s values: %w", field, err)
		}
		*dst = sortedStrings(raw)
	}
	return values, nil
}

func (r *questionRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return err
	}

	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject", Value: 1}, {Key: "chapter", Value: 1}, {Key: "section", Value: 1}}},
		{Keys: bson.D{{Key: "subject", Value: 1}}},
		{Keys: bson.D{{Key: "chapter", Value: 1}}},
		{Keys: bson.D{{Key: "section", Value: 1}}},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("creating question indexes: %w", err)
	}
	return nil
}

// buildFilter maps the sparse Filters into a Mongo equality filter.
func buildFilter(f Filters) bson.M {
	filter := bson.M{}
	if f.Subject != "" {
		filter["subject"] = f.Subject
	}
	if f.Chapter != "" {
		filter["chapter"] = f.Chapter
	}
	if f.Section != "" {
		filter["section"] = f.Section
	}
	return filter
}

// updateFields flattens a question into the $set document for Update,
// stripping any store-assigned identifier and stamping updatedAt.
func updateFields(question *model.Question) (bson.M, error) {
	raw, err := bson.Marshal(question)
	if err != nil {
		return nil, fmt.Errorf("encoding question for update: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding question for update: %w", err)
	}
	delete(fields, "_id")
	fields["updatedAt"] = time.Now().UTC()
	return fields, nil
}

// sortedStrings keeps the distinct non-empty string values, drops the
// "Unknown" placeholder and sorts the rest.
func sortedStrings(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok || s == "" || s == unknownSentinel {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
