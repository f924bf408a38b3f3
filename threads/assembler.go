package threads

import (
	"context"

	"knowshare/models"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentView is a comment resolved for presentation: author display name
// only, not the full author record.
type CommentView struct {
	ID         primitive.ObjectID `json:"id"`
	Text       string             `json:"text"`
	AuthorID   primitive.ObjectID `json:"authorId"`
	AuthorName string             `json:"authorName"`
	CreatedAt  int64              `json:"createdAt"`
}

// ThreadNode is one top-level comment with its immediate replies. Deeper
// nesting stays flat: reply-to-reply records surface under the nearest
// top-level ancestor in stored order.
type ThreadNode struct {
	Comment CommentView   `json:"comment"`
	Replies []CommentView `json:"replies"`
}

// Assembler materializes the two-level thread view for a post. It is a
// read-side projection only and never mutates the stored comments.
type Assembler struct {
	Comments *mongo.Collection
	Users    *mongo.Collection
}

func (a *Assembler) Assemble(ctx context.Context, postID primitive.ObjectID) ([]ThreadNode, error) {
	cursor, err := a.Comments.Find(ctx, bson.M{"postId": postID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	names, err := a.authorNames(ctx, comments)
	if err != nil {
		return nil, err
	}

	return Build(comments, names), nil
}

func (a *Assembler) authorNames(ctx context.Context, comments []models.Comment) (map[primitive.ObjectID]string, error) {
	ids := lo.Uniq(lo.Map(comments, func(c models.Comment, _ int) primitive.ObjectID {
		return c.AuthorID
	}))

	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cursor, err := a.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// Build normalizes flat comment records into the two-level view. Top-level
// comments keep their input order; replies resolve through the parent's
// stored reply references, skipping ids that no longer exist.
func Build(comments []models.Comment, authorNames map[primitive.ObjectID]string) []ThreadNode {
	byID := make(map[primitive.ObjectID]models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	topLevel := lo.Filter(comments, func(c models.Comment, _ int) bool {
		return c.ParentID == nil
	})

	nodes := make([]ThreadNode, 0, len(topLevel))
	for _, c := range topLevel {
		replies := make([]CommentView, 0, len(c.Replies))
		for _, replyID := range c.Replies {
			reply, ok := byID[replyID]
			if !ok {
				continue
			}
			replies = append(replies, view(reply, authorNames))
		}
		nodes = append(nodes, ThreadNode{Comment: view(c, authorNames), Replies: replies})
	}
	return nodes
}

func view(c models.Comment, authorNames map[primitive.ObjectID]string) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorID:   c.AuthorID,
		AuthorName: authorNames[c.AuthorID],
		CreatedAt:  c.CreatedAt,
	}
}
