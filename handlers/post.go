package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"knowshare/apperr"
	"knowshare/interactions"
	"knowshare/media"
	"knowshare/models"
	"knowshare/threads"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostHandler orchestrates the post lifecycle: moderation gate and media
// upload on create, author-only update with full media replacement, and the
// idempotent cascade on delete.
type PostHandler struct {
	Moderation Moderator
	Media      AssetStore

	Posts        PostStore
	Comments     ChildDeleter
	Interactions ChildDeleter
	Users        UserFinder

	Assembler  *threads.Assembler
	Aggregator *interactions.Aggregator
}

// PostView is a stored post decorated for response: author display name,
// threaded comments and engagement stats.
type PostView struct {
	models.Post
	AuthorName string               `json:"authorName"`
	Comments   []threads.ThreadNode `json:"comments"`
	interactions.Stats
}

func (h *PostHandler) Create(c *gin.Context) {
	const op = "create post"

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if title == "" || content == "" {
		apperr.Respond(c, apperr.New("title and content are required", http.StatusBadRequest, op))
		return
	}

	authorID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Moderation gate: the post is not created without a resolved category.
	modResult, err := h.Moderation.ClassifyAndScreen(ctx, title, content)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	folderKey := media.NewFolderKey()
	assets := []models.MediaAsset{}
	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		if uploads := form.File["files"]; len(uploads) > 0 {
			assets, err = h.Media.Upload(ctx, uploads, folderKey)
			if err != nil {
				log.Printf("[%s] media upload failed: %v", op, err)
				apperr.Respond(c, apperr.Wrap(err, "Failed to upload media files", http.StatusInternalServerError, op))
				return
			}
		}
	}

	now := time.Now().Unix()
	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Content:       content,
		Media:         assets,
		FolderKey:     folderKey,
		AuthorID:      authorID,
		CategoryID:    &modResult.CategoryID,
		SubcategoryID: &modResult.SubcategoryID,
		IsFlagged:     modResult.Flagged,
		FlagReason:    modResult.FlagReason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := h.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("[%s] insert failed: %v", op, err)
		apperr.Respond(c, apperr.Wrap(err, "Failed to create post", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Post created successfully",
		"autoFlagged": modResult.Flagged,
		"category":    modResult.CategoryName,
		"subcategory": modResult.SubcategoryName,
		"data":        post,
	})
}

func (h *PostHandler) List(c *gin.Context) {
	const op = "get posts"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := h.Posts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch posts", http.StatusInternalServerError, op))
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to decode posts", http.StatusInternalServerError, op))
		return
	}

	authorNames, err := h.authorNames(ctx, posts)
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post authors", http.StatusInternalServerError, op))
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		view, err := h.decorate(ctx, post, authorNames[post.AuthorID])
		if err != nil {
			apperr.Respond(c, apperr.Wrap(err, "Failed to assemble post details", http.StatusInternalServerError, op))
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

func (h *PostHandler) Get(c *gin.Context) {
	const op = "get post"

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid post ID", http.StatusBadRequest, op))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = h.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(c, apperr.New("Post not found", http.StatusNotFound, op))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post", http.StatusInternalServerError, op))
		return
	}

	authorNames, err := h.authorNames(ctx, []models.Post{post})
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post author", http.StatusInternalServerError, op))
		return
	}

	view, err := h.decorate(ctx, post, authorNames[post.AuthorID])
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to assemble post details", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": view})
}

func (h *PostHandler) Update(c *gin.Context) {
	const op = "update post"

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid post ID", http.StatusBadRequest, op))
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var post models.Post
	err = h.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(c, apperr.New("Post not found", http.StatusNotFound, op))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post", http.StatusInternalServerError, op))
		return
	}

	// Update is author-only, unlike delete.
	if post.AuthorID != userID {
		apperr.Respond(c, apperr.New("Unauthorized to update this post", http.StatusForbidden, op))
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		post.Title = title
	}
	if content := strings.TrimSpace(c.PostForm("content")); content != "" {
		post.Content = content
	}

	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		if uploads := form.File["files"]; len(uploads) > 0 {
			// The folder key is reused across updates, never regenerated.
			folderKey := post.FolderKey
			if folderKey == "" {
				folderKey = media.NewFolderKey()
			}

			assets, replaceErr := h.Media.Replace(ctx, post.Media, uploads, folderKey)
			if replaceErr != nil {
				log.Printf("[%s] media replace failed: %v", op, replaceErr)
				apperr.Respond(c, apperr.Wrap(replaceErr, "Failed to upload media files", http.StatusInternalServerError, op))
				return
			}
			post.Media = assets
			post.FolderKey = folderKey
		}
	}

	post.UpdatedAt = time.Now().Unix()

	update := bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"media":     post.Media,
		"folderKey": post.FolderKey,
		"updatedAt": post.UpdatedAt,
	}}
	if _, err := h.Posts.UpdateOne(ctx, bson.M{"_id": postID}, update); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to update post", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"data":    post,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	const op = "delete post"

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New("Invalid post ID", http.StatusBadRequest, op))
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var post models.Post
	err = h.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(c, apperr.New("Post not found", http.StatusNotFound, op))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to fetch post", http.StatusInternalServerError, op))
		return
	}

	if post.AuthorID != userID && !requesterIsPrivileged(c) {
		apperr.Respond(c, apperr.New("Unauthorized to delete this post", http.StatusForbidden, op))
		return
	}

	// Remote cleanup is a courtesy; a failure never blocks the cascade.
	if post.FolderKey != "" {
		if err := h.Media.DeleteAll(ctx, post.FolderKey); err != nil {
			log.Printf("[%s] failed to delete remote media for %s: %v", op, post.ID.Hex(), err)
		}
	}

	// Cascade: children first, post last, so an interrupted delete can be
	// retried until the post row is gone.
	if _, err := h.Comments.DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to delete post comments", http.StatusInternalServerError, op))
		return
	}
	if _, err := h.Interactions.DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to delete post interactions", http.StatusInternalServerError, op))
		return
	}
	if _, err := h.Posts.DeleteOne(ctx, bson.M{"_id": postID}); err != nil {
		apperr.Respond(c, apperr.Wrap(err, "Failed to delete post", http.StatusInternalServerError, op))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *PostHandler) decorate(ctx context.Context, post models.Post, authorName string) (PostView, error) {
	comments, err := h.Assembler.Assemble(ctx, post.ID)
	if err != nil {
		return PostView{}, err
	}

	stats, err := h.Aggregator.Stats(ctx, post.ID)
	if err != nil {
		return PostView{}, err
	}

	return PostView{
		Post:       post,
		AuthorName: authorName,
		Comments:   comments,
		Stats:      stats,
	}, nil
}

func (h *PostHandler) authorNames(ctx context.Context, posts []models.Post) (map[primitive.ObjectID]string, error) {
	ids := lo.Uniq(lo.Map(posts, func(p models.Post, _ int) primitive.ObjectID {
		return p.AuthorID
	}))

	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cursor, err := h.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
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
