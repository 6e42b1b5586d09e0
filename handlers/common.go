package handlers

import (
	"context"

	"communityconnect/database"
	"communityconnect/models"
	"communityconnect/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Shared state and helpers used across handler files.

const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

var mediaGateway *storage.Gateway

// SetMediaGateway injects the Cloudinary gateway at startup.
func SetMediaGateway(g *storage.Gateway) {
	mediaGateway = g
}

// authorCards batch-loads the card fields for a set of user IDs.
func authorCards(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.AuthorCard, error) {
	cards := make(map[primitive.ObjectID]models.AuthorCard)
	if len(ids) == 0 {
		return cards, nil
	}

	projection := options.Find().SetProjection(bson.M{
		"username": 1, "name": 1, "email": 1, "avatarUrl": 1, "title": 1,
	})
	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.AuthorCard
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.AvatarURL == "" {
			u.AvatarURL = fallbackAvatar
		}
		cards[u.ID] = u
	}
	return cards, nil
}

// cardForUser builds the response card for an already loaded user.
func cardForUser(u *models.User) *models.AuthorCard {
	card := &models.AuthorCard{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Title:     u.Title,
	}
	if card.AvatarURL == "" {
		card.AvatarURL = fallbackAvatar
	}
	return card
}
