package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID `bson:"sender" json:"senderId"`
	Content        string             `bson:"content" json:"content"`
	Media          []Media            `bson:"media" json:"media"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`

	Sender *AuthorCard `bson:"-" json:"sender,omitempty"` // populated in responses only
}
