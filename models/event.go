package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event is the department-event record posts can reference through
// Post.EventID.
type Event struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description" json:"description"`
	Date         int64                `bson:"date" json:"date"`
	Location     string               `bson:"location" json:"location"`
	CreatedBy    primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Files        []Media              `bson:"files" json:"files"`
	CreatedAt    int64                `bson:"createdAt" json:"createdAt"`
}
