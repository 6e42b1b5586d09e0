package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// GetConnections resolves the session user's connection references to
// profile cards.
func GetConnections(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cards, err := authorCards(ctx, user.Connections)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch connections"})
		return
	}

	// Preserve the stored connection order.
	response := make([]gin.H, 0, len(user.Connections))
	for _, id := range user.Connections {
		card, ok := cards[id]
		if !ok {
			continue
		}
		response = append(response, gin.H{
			"id":        card.ID.Hex(),
			"username":  card.Username,
			"name":      card.Name,
			"email":     card.Email,
			"avatarUrl": card.AvatarURL,
			"title":     card.Title,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Connect records a mutual connection between the session user and the
// target. Repeating an existing connection is a no-op.
func Connect(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if targetID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot connect to yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Users.CountDocuments(ctx, bson.M{"_id": targetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now().Unix()
	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$addToSet": bson.M{"connections": targetID},
		"$set":      bson.M{"updatedAt": now},
	})
	if err == nil {
		_, err = database.Users.UpdateOne(ctx, bson.M{"_id": targetID}, bson.M{
			"$addToSet": bson.M{"connections": user.ID},
			"$set":      bson.M{"updatedAt": now},
		})
		if err != nil {
			// The forward edge is already stored; retrying the connect
			// repairs the pair because $addToSet is idempotent.
			log.Printf("Connect: one-sided connection %s -> %s, reverse update failed: %v",
				user.ID.Hex(), targetID.Hex(), err)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection added"})
}
