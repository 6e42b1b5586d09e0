package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

// Media is the descriptor returned by the upload gateway and stored
// verbatim on the owning post.
type Media struct {
	Type         string `bson:"type" json:"type"` // image, video, document
	URL          string `bson:"url" json:"url"`
	PublicID     string `bson:"publicId,omitempty" json:"publicId,omitempty"` // storage handle for deletion
	OriginalName string `bson:"originalName,omitempty" json:"originalName,omitempty"`
	MimeType     string `bson:"mimeType,omitempty" json:"mimeType,omitempty"`
	Size         int64  `bson:"size,omitempty" json:"size,omitempty"`
}

type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AuthorID primitive.ObjectID `bson:"author" json:"authorId"`
	Title    string             `bson:"title,omitempty" json:"title,omitempty"`
	Content  string             `bson:"content" json:"content"`
	Media    []Media            `bson:"media" json:"media"`

	// Denormalized counters, moved only by $inc alongside the like/comment
	// writes. Never recomputed by scanning.
	Likes        int                  `bson:"likes" json:"likes"`
	CommentCount int                  `bson:"commentCount" json:"commentCount"`
	Comments     []primitive.ObjectID `bson:"comments" json:"comments"`

	EventID *primitive.ObjectID `bson:"event,omitempty" json:"event,omitempty"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`

	Author *AuthorCard `bson:"-" json:"author,omitempty"` // populated in responses only
}
