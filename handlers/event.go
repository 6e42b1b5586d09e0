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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreateEventRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Date        int64          `json:"date"`
	Location    string         `json:"location"`
	Files       []models.Media `json:"files"`
}

// ListEvents returns upcoming-first department events.
func ListEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := database.Events.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func CreateEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event title is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	files := req.Files
	if files == nil {
		files = []models.Media{}
	}

	event := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		CreatedBy:    user.ID,
		Participants: []primitive.ObjectID{user.ID},
		Files:        files,
		CreatedAt:    time.Now().Unix(),
	}

	if _, err := database.Events.InsertOne(ctx, event); err != nil {
		log.Printf("CreateEvent insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}
