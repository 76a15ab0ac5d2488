package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rakeshranjan410/paperplane-api/internal/model"
)

func TestBuildFilterSparse(t *testing.T) {
	assert.Equal(t, bson.M{}, buildFilter(Filters{}), "empty filters match everything")

	assert.Equal(t,
		bson.M{"subject": "Physics"},
		buildFilter(Filters{Subject: "Physics"}))

	assert.Equal(t,
		bson.M{"subject": "Physics", "chapter": "Optics", "section": "Lenses"},
		buildFilter(Filters{Subject: "Physics", Chapter: "Optics", Section: "Lenses"}))
}

func TestUpdateFieldsStripsIDAndStampsUpdatedAt(t *testing.T) {
	q := &model.Question{
		ID:      "q1",
		Type:    model.TypeSingle,
		Subject: "Physics",
	}
	fields, err := updateFields(q)
	require.NoError(t, err)

	assert.NotContains(t, fields, "_id")
	assert.Contains(t, fields, "updatedAt")
	assert.Equal(t, "q1", fields["id"])
	assert.Equal(t, "single", fields["type"])
	assert.Equal(t, "Physics", fields["subject"])
}

func TestSortedStrings(t *testing.T) {
	got := sortedStrings([]interface{}{"Optics", "", "Unknown", "Mechanics", 42, nil, "Waves"})
	assert.Equal(t, []string{"Mechanics", "Optics", "Waves"}, got)
}
