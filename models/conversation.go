package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Conversation struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Participants  []primitive.ObjectID `bson:"participants" json:"participants"`
	LastMessageAt int64                `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     int64                `bson:"createdAt" json:"createdAt"`
}
