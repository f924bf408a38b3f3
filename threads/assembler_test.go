package threads

import (
	"testing"

	"knowshare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildTwoLevelThread(t *testing.T) {
	authorA := primitive.NewObjectID()
	authorB := primitive.NewObjectID()

	commentA := models.Comment{ID: primitive.NewObjectID(), Text: "A", AuthorID: authorA}
	commentB := models.Comment{ID: primitive.NewObjectID(), Text: "B", AuthorID: authorB}
	commentC := models.Comment{ID: primitive.NewObjectID(), Text: "C", AuthorID: authorB, ParentID: &commentA.ID}
	commentA.Replies = []primitive.ObjectID{commentC.ID}

	names := map[primitive.ObjectID]string{
		authorA: "Ada",
		authorB: "Ben",
	}

	nodes := Build([]models.Comment{commentA, commentB, commentC}, names)
	require.Len(t, nodes, 2)

	assert.Equal(t, "A", nodes[0].Comment.Text)
	assert.Equal(t, "Ada", nodes[0].Comment.AuthorName)
	require.Len(t, nodes[0].Replies, 1)
	assert.Equal(t, "C", nodes[0].Replies[0].Text)
	assert.Equal(t, "Ben", nodes[0].Replies[0].AuthorName)

	assert.Equal(t, "B", nodes[1].Comment.Text)
	assert.Empty(t, nodes[1].Replies)
	assert.NotNil(t, nodes[1].Replies)
}

func TestBuildKeepsStoredReplyOrder(t *testing.T) {
	author := primitive.NewObjectID()

	parent := models.Comment{ID: primitive.NewObjectID(), Text: "parent", AuthorID: author}
	first := models.Comment{ID: primitive.NewObjectID(), Text: "first", AuthorID: author, ParentID: &parent.ID}
	second := models.Comment{ID: primitive.NewObjectID(), Text: "second", AuthorID: author, ParentID: &parent.ID}
	parent.Replies = []primitive.ObjectID{second.ID, first.ID}

	nodes := Build([]models.Comment{parent, first, second}, nil)
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Replies, 2)

	assert.Equal(t, "second", nodes[0].Replies[0].Text)
	assert.Equal(t, "first", nodes[0].Replies[1].Text)
}

func TestBuildSkipsDanglingReplyReferences(t *testing.T) {
	author := primitive.NewObjectID()

	parent := models.Comment{ID: primitive.NewObjectID(), Text: "parent", AuthorID: author}
	parent.Replies = []primitive.ObjectID{primitive.NewObjectID()}

	nodes := Build([]models.Comment{parent}, nil)
	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Replies)
}

func TestBuildEmptyInput(t *testing.T) {
	nodes := Build(nil, nil)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}
