package handlers

import (
	"context"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"
	"communityconnect/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAdminStats reports live collection counts for the admin dashboard.
// Admin role only.
func GetAdminStats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts := gin.H{}
	collections := map[string]*mongo.Collection{
		"users":         database.Users,
		"posts":         database.Posts,
		"comments":      database.Comments,
		"likes":         database.Likes,
		"conversations": database.Conversations,
		"messages":      database.Messages,
		"events":        database.Events,
	}
	for name, coll := range collections {
		n, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		counts[name] = n
	}
	counts["generatedAt"] = time.Now().Unix()

	c.JSON(http.StatusOK, counts)
}
