package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Comment struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	PostID   primitive.ObjectID   `bson:"postId" json:"postId"`
	AuthorID primitive.ObjectID   `bson:"author" json:"authorId"`
	Content  string               `bson:"content" json:"content"`
	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`

	Author *AuthorCard `bson:"-" json:"author,omitempty"` // populated in responses only
}
