package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types. The type tag decides which nested blocks are meaningful:
// single/multiple/integer carry content+options, comprehension and matrix
// additionally carry a passage and one level of sub-questions.
const (
	TypeSingle        = "single"
	TypeMultiple      = "multiple"
	TypeComprehension = "comprehension"
	TypeMatrix        = "matrix"
	TypeInteger       = "integer"
)

// FlexID is the caller-chosen logical question id. Callers send it as either
// a JSON string or a JSON number; both normalize to the text form that the
// uniqueness index is built over.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question id must be a string or a number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// Content is the primary content block of a question or sub-question.
type Content struct {
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Images []string `json:"images,omitempty" bson:"images,omitempty"`
}

// Option is one answer option. Each option has at most one image slot.
type Option struct {
	Text      string `json:"text,omitempty" bson:"text,omitempty"`
	Image     string `json:"image,omitempty" bson:"image,omitempty"`
	IsCorrect bool   `json:"isCorrect,omitempty" bson:"isCorrect,omitempty"`
}

// Passage is the shared reading block of comprehension/matrix questions.
type Passage struct {
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Images []string `json:"images,omitempty" bson:"images,omitempty"`
}

// SubQuestion repeats the content/options shapes one level down. Sub-questions
// do not nest further.
type SubQuestion struct {
	Type    string      `json:"type,omitempty" bson:"type,omitempty"`
	Content *Content    `json:"content,omitempty" bson:"content,omitempty"`
	Options []Option    `json:"options,omitempty" bson:"options,omitempty"`
	Answer  interface{} `json:"answer,omitempty" bson:"answer,omitempty"`
}

// Question is the unit of work submitted by callers. ImageURL is the legacy
// top-level single-image field kept for older clients.
type Question struct {
	ID        FlexID        `json:"id" bson:"id" binding:"required"`
	Type      string        `json:"type" bson:"type" binding:"required,oneof=single multiple comprehension matrix integer"`
	Subject   string        `json:"subject,omitempty" bson:"subject,omitempty"`
	Chapter   string        `json:"chapter,omitempty" bson:"chapter,omitempty"`
	Section   string        `json:"section,omitempty" bson:"section,omitempty"`
	ImageURL  string        `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Content   *Content      `json:"content,omitempty" bson:"content,omitempty"`
	Options   []Option      `json:"options,omitempty" bson:"options,omitempty"`
	Passage   *Passage      `json:"passage,omitempty" bson:"passage,omitempty"`
	Questions []SubQuestion `json:"questions,omitempty" bson:"questions,omitempty"`
	Answer    interface{}   `json:"answer,omitempty" bson:"answer,omitempty"`
	Marks     float64       `json:"marks,omitempty" bson:"marks,omitempty"`
}

// StoredQuestion is a Question as persisted in MongoDB, with the
// store-assigned identifier and bookkeeping fields added on insert/update.
type StoredQuestion struct {
	MongoID          primitive.ObjectID `json:"mongoId,omitempty" bson:"_id,omitempty"`
	Question         `bson:",inline"`
	OriginalImageURL string    `json:"originalImageUrl,omitempty" bson:"originalImageUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// FilterValues holds the distinct classification values across all stored
// questions, used to populate filter dropdowns.
type FilterValues struct {
	Subjects []string `json:"subjects"`
	Chapters []string `json:"chapters"`
	Sections []string `json:"sections"`
}
