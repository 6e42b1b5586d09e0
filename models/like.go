package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	LikeTargetPost    = "post"
	LikeTargetComment = "comment"
)

// Like is one (user, target) fact in the like ledger. The unique index on
// (userId, targetType, targetId) is the de-duplication key for toggling.
type Like struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	TargetType string             `bson:"targetType" json:"targetType"` // post, comment
	TargetID   primitive.ObjectID `bson:"targetId" json:"targetId"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
}
