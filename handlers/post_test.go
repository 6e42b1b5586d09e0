package handlers

import (
	"testing"

	"communityconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidPostBody(t *testing.T) {
	media := []models.Media{{Type: models.MediaImage, URL: "https://cdn.example.com/a.jpg"}}

	tests := []struct {
		name    string
		content string
		media   []models.Media
		want    bool
	}{
		{"content only", "hello department", nil, true},
		{"media only", "", media, true},
		{"content and media", "hello", media, true},
		{"empty", "", nil, false},
		{"whitespace only", "   \t\n", nil, false},
		{"whitespace with media", "   ", media, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validPostBody(tt.content, tt.media); got != tt.want {
				t.Errorf("validPostBody(%q, %d media) = %v, want %v",
					tt.content, len(tt.media), got, tt.want)
			}
		})
	}
}

func TestIsPostAuthor(t *testing.T) {
	author := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), AuthorID: author, Content: "original"}

	if !isPostAuthor(post, author) {
		t.Error("author should pass the ownership check")
	}
	if isPostAuthor(post, primitive.NewObjectID()) {
		t.Error("a different user must not pass the ownership check")
	}

	// Same ID decoded from its hex form still compares equal.
	roundTripped, err := primitive.ObjectIDFromHex(author.Hex())
	if err != nil {
		t.Fatalf("ObjectIDFromHex: %v", err)
	}
	if !isPostAuthor(post, roundTripped) {
		t.Error("hex round-tripped author ID should still pass")
	}
}
