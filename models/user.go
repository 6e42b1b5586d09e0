package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`

	Name       string `bson:"name" json:"name"`
	AvatarURL  string `bson:"avatarUrl" json:"avatarUrl"`
	Title      string `bson:"title" json:"title"`
	Location   string `bson:"location" json:"location"`
	Bio        string `bson:"bio" json:"bio"`
	CoverColor string `bson:"coverColor" json:"coverColor"`
	Role       string `bson:"role" json:"role"`

	Profile     Profile              `bson:"profile" json:"profile"`
	Connections []primitive.ObjectID `bson:"connections" json:"connections"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
}

// Profile is the nested resume sub-document on a User.
type Profile struct {
	Education   []Education  `bson:"education" json:"education"`
	Experience  []Experience `bson:"experience" json:"experience"`
	Skills      []string     `bson:"skills" json:"skills"`
	SocialLinks SocialLinks  `bson:"socialLinks" json:"socialLinks"`
}

type Education struct {
	School   string `bson:"school" json:"school"`
	Degree   string `bson:"degree" json:"degree"`
	Duration string `bson:"duration" json:"duration"`
	Grade    string `bson:"grade" json:"grade"`
}

type Experience struct {
	Company     string `bson:"company" json:"company"`
	Title       string `bson:"title" json:"title"`
	Start       string `bson:"start" json:"start"` // month strings like "2023-01"
	End         string `bson:"end" json:"end"`
	Description string `bson:"description" json:"description"`
}

type SocialLinks struct {
	LinkedIn string `bson:"linkedin" json:"linkedin"`
	GitHub   string `bson:"github" json:"github"`
	Twitter  string `bson:"twitter" json:"twitter"`
}

// AuthorCard is the subset of user fields attached to posts, comments and
// messages in responses.
type AuthorCard struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	AvatarURL string             `bson:"avatarUrl" json:"avatarUrl"`
	Title     string             `bson:"title" json:"title"`
}
