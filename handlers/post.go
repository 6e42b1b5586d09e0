package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"
	"communityconnect/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Media   []models.Media `json:"media"`
}

type EditPostRequest struct {
	Content string `json:"content"`
}

// validPostBody enforces the content-or-media invariant: whitespace-only
// content with no media is rejected.
func validPostBody(content string, media []models.Media) bool {
	return strings.TrimSpace(content) != "" || len(media) > 0
}

// isPostAuthor guards edits: only the author may change a post. Ownership
// is exact ObjectID equality against the freshly loaded document.
func isPostAuthor(post *models.Post, userID primitive.ObjectID) bool {
	return post.AuthorID == userID
}

// postWithAuthor is the aggregation row shape: the post document plus the
// $lookup-ed author.
type postWithAuthor struct {
	models.Post `bson:",inline"`
	AuthorDoc   *models.AuthorCard `bson:"authorDoc"`
}

func authorLookupPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// ListPosts returns every post newest-first with author fields resolved.
func ListPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Posts.Aggregate(ctx, authorLookupPipeline(bson.D{}))
	if err != nil {
		log.Printf("ListPosts aggregate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var rows []postWithAuthor
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("ListPosts decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	posts := make([]models.Post, len(rows))
	for i, row := range rows {
		post := row.Post
		post.Author = row.AuthorDoc
		if post.Author != nil && post.Author.AvatarURL == "" {
			post.Author.AvatarURL = fallbackAvatar
		}
		posts[i] = post
	}

	c.JSON(http.StatusOK, posts)
}

func CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validPostBody(req.Content, req.Media) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have content or media"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().Unix()
	media := req.Media
	if media == nil {
		media = []models.Media{}
	}

	post := models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Media:     media,
		Likes:     0,
		Comments:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post.Author = cardForUser(user)
	c.JSON(http.StatusCreated, post)
}

// EditPost lets the author replace a post's text content. Media is
// immutable after creation.
func EditPost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	if !isPostAuthor(&post, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	if !validPostBody(req.Content, post.Media) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have content or media"})
		return
	}

	post.Content = req.Content
	post.UpdatedAt = time.Now().Unix()

	_, err = database.Posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": bson.M{
		"content":   post.Content,
		"updatedAt": post.UpdatedAt,
	}})
	if err != nil {
		log.Printf("EditPost update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post.Author = cardForUser(user)
	c.JSON(http.StatusOK, post)
}
