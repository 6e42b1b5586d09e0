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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SendMessageRequest struct {
	Content string         `json:"content"`
	Media   []models.Media `json:"media"`
}

// conversationResponse resolves participant references to cards.
func conversationResponse(ctx context.Context, conv *models.Conversation) (gin.H, error) {
	cards, err := authorCards(ctx, conv.Participants)
	if err != nil {
		return nil, err
	}

	participants := make([]gin.H, 0, len(conv.Participants))
	for _, id := range conv.Participants {
		card, ok := cards[id]
		if !ok {
			participants = append(participants, gin.H{
				"_id": id.Hex(), "name": "Unknown User", "avatarUrl": fallbackAvatar,
			})
			continue
		}
		participants = append(participants, gin.H{
			"_id":       card.ID.Hex(),
			"username":  card.Username,
			"name":      card.Name,
			"avatarUrl": card.AvatarURL,
			"title":     card.Title,
		})
	}

	return gin.H{
		"_id":           conv.ID.Hex(),
		"participants":  participants,
		"lastMessageAt": conv.LastMessageAt,
		"createdAt":     conv.CreatedAt,
	}, nil
}

// ListConversations returns the session user's conversations, most recent
// activity first.
func ListConversations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := database.Conversations.Find(ctx, bson.M{"participants": user.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode conversations"})
		return
	}

	response := make([]gin.H, 0, len(conversations))
	for i := range conversations {
		entry, err := conversationResponse(ctx, &conversations[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve participants"})
			return
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, response)
}

// StartConversation opens (or returns the existing) two-party conversation
// between the session user and the target user.
func StartConversation(c *gin.Context) {
	user := middleware.CurrentUser(c)

	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if targetID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
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

	participants := []primitive.ObjectID{user.ID, targetID}

	// Dedup by exact participant set.
	filter := bson.M{"participants": bson.M{"$all": participants, "$size": len(participants)}}

	var existing models.Conversation
	err = database.Conversations.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		entry, rerr := conversationResponse(ctx, &existing)
		if rerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve participants"})
			return
		}
		c.JSON(http.StatusOK, entry)
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now().Unix()
	conv := models.Conversation{
		ID:            primitive.NewObjectID(),
		Participants:  participants,
		LastMessageAt: now,
		CreatedAt:     now,
	}
	if _, err := database.Conversations.InsertOne(ctx, conv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	entry, err := conversationResponse(ctx, &conv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve participants"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// requireParticipant loads the conversation and verifies membership.
func requireParticipant(ctx context.Context, c *gin.Context, conversationID, userID primitive.ObjectID) bool {
	err := database.Conversations.FindOne(ctx, bson.M{
		"_id":          conversationID,
		"participants": userID,
	}).Err()
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to conversation"})
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify conversation access"})
		return false
	}
	return true
}

// ListMessages returns a conversation's messages in chronological order
// with sender fields resolved. Participants only.
func ListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conversationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !requireParticipant(ctx, c, conversationID, user.ID) {
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "conversationId", Value: conversationID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "sender"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "senderDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$senderDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := database.Messages.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("ListMessages aggregate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	defer cursor.Close(ctx)

	var rows []struct {
		models.Message `bson:",inline"`
		SenderDoc      *models.AuthorCard `bson:"senderDoc"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("ListMessages decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages"})
		return
	}

	messages := make([]models.Message, len(rows))
	for i, row := range rows {
		message := row.Message
		message.Sender = row.SenderDoc
		if message.Sender != nil && message.Sender.AvatarURL == "" {
			message.Sender.AvatarURL = fallbackAvatar
		}
		messages[i] = message
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage appends a message to a conversation the session user belongs
// to and bumps the conversation's activity timestamp.
func SendMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conversationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" && len(req.Media) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must have content or media"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !requireParticipant(ctx, c, conversationID, user.ID) {
		return
	}

	media := req.Media
	if media == nil {
		media = []models.Media{}
	}

	message := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: conversationID,
		SenderID:       user.ID,
		Content:        req.Content,
		Media:          media,
		CreatedAt:      time.Now().Unix(),
	}

	if _, err := database.Messages.InsertOne(ctx, message); err != nil {
		log.Printf("SendMessage insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	_, err = database.Conversations.UpdateOne(ctx, bson.M{"_id": conversationID}, bson.M{
		"$set": bson.M{"lastMessageAt": message.CreatedAt},
	})
	if err != nil {
		log.Printf("SendMessage activity bump error: %v", err)
	}

	message.Sender = cardForUser(user)
	c.JSON(http.StatusCreated, message)
}
