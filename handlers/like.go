package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"
	"communityconnect/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToggleLike flips the (user, post) like fact and moves the denormalized
// counter with an atomic $inc in the same flow. Two calls in a row return
// the post to its original state.
func ToggleLike(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
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

	likeKey := bson.M{
		"userId":     user.ID,
		"targetType": models.LikeTargetPost,
		"targetId":   postID,
	}

	result, err := database.Likes.DeleteOne(ctx, likeKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	liked, delta := toggleTransition(result.DeletedCount > 0)
	if liked {
		like := models.Like{
			ID:         primitive.NewObjectID(),
			UserID:     user.ID,
			TargetType: models.LikeTargetPost,
			TargetID:   postID,
			CreatedAt:  time.Now().Unix(),
		}
		if _, err := database.Likes.InsertOne(ctx, like); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost a race against a concurrent toggle; report the
				// now-current state without moving the counter.
				reportLikeState(ctx, c, postID, likeKey)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record like"})
			return
		}
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = database.Posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"likes": delta}},
		after,
	).Decode(&post)
	if err != nil {
		log.Printf("ToggleLike counter update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update like count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": post.Likes})
}

// toggleTransition maps the ledger outcome of a toggle to the resulting
// liked state and the counter delta: deleting an existing fact unlikes,
// otherwise a fact gets inserted and the counter goes up. Applying it
// twice always lands back on the starting state.
func toggleTransition(hadLike bool) (liked bool, delta int) {
	if hadLike {
		return false, -1
	}
	return true, 1
}

func reportLikeState(ctx context.Context, c *gin.Context, postID primitive.ObjectID, likeKey bson.M) {
	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	count, err := database.Likes.CountDocuments(ctx, likeKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": count > 0, "likes": post.Likes})
}

// LikeStatus reports whether the session user has liked the post.
func LikeStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Likes.CountDocuments(ctx, bson.M{
		"userId":     user.ID,
		"targetType": models.LikeTargetPost,
		"targetId":   postID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": count > 0})
}
