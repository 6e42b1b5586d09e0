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

type AddCommentRequest struct {
	Text string `json:"text"`
}

// ListComments returns a post's comments oldest-first with author fields
// resolved.
func ListComments(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "postId", Value: postID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
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

	cursor, err := database.Comments.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("ListComments aggregate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(ctx)

	var rows []struct {
		models.Comment `bson:",inline"`
		AuthorDoc      *models.AuthorCard `bson:"authorDoc"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("ListComments decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	comments := make([]models.Comment, len(rows))
	for i, row := range rows {
		comment := row.Comment
		comment.Author = row.AuthorDoc
		if comment.Author != nil && comment.Author.AvatarURL == "" {
			comment.Author.AvatarURL = fallbackAvatar
		}
		comments[i] = comment
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment creates a comment and attaches its reference to the post. The
// reference push and the commentCount increment happen in one document
// update, so the counter always equals the number of references.
func AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  user.ID,
		Content:   req.Text,
		Likes:     []primitive.ObjectID{},
		CreatedAt: time.Now().Unix(),
	}

	if _, err := database.Comments.InsertOne(ctx, comment); err != nil {
		log.Printf("AddComment insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	_, err = database.Posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": comment.ID},
		"$inc":  bson.M{"commentCount": 1},
		"$set":  bson.M{"updatedAt": time.Now().Unix()},
	})
	if err != nil {
		log.Printf("AddComment counter update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach comment"})
		return
	}

	comment.Author = cardForUser(user)
	c.JSON(http.StatusCreated, comment)
}

// UserCommentStatus reports whether the session user has commented on the
// post.
func UserCommentStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Comments.CountDocuments(ctx, bson.M{
		"postId": postID,
		"author": user.ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasCommented": count > 0})
}
