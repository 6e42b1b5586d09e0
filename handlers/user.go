package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"
	"communityconnect/models"
	"communityconnect/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const maxAvatarBytes = 5 << 20

// UpdateProfileRequest enumerates every recognized profile field. Empty
// top-level fields keep their stored values; the profile sub-document is
// merged section by section.
type UpdateProfileRequest struct {
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Location   string         `json:"location"`
	About      string         `json:"about"`
	Avatar     string         `json:"avatar"`
	CoverColor string         `json:"coverColor"`
	Profile    *ProfileUpdate `json:"profile"`
}

type ProfileUpdate struct {
	Education   []models.Education  `json:"education"`
	Experience  []models.Experience `json:"experience"`
	Skills      []string            `json:"skills"`
	SocialLinks *SocialLinksUpdate  `json:"socialLinks"`
}

type SocialLinksUpdate struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
}

// GetCurrentUser returns the session's user, freshly loaded by the auth
// middleware.
func GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	applyProfileUpdate(user, &req)
	user.UpdatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"title":      user.Title,
		"location":   user.Location,
		"bio":        user.Bio,
		"avatarUrl":  user.AvatarURL,
		"coverColor": user.CoverColor,
		"profile":    user.Profile,
		"updatedAt":  user.UpdatedAt,
	}}

	result, err := database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		log.Printf("UpdateProfile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": userResponse(user)})
}

// applyProfileUpdate merges the request into the stored user field by
// field: empty strings and absent sections keep the current values.
func applyProfileUpdate(user *models.User, req *UpdateProfileRequest) {
	user.Name = mergeField(user.Name, req.Name)
	user.Title = mergeField(user.Title, req.Title)
	user.Location = mergeField(user.Location, req.Location)
	user.Bio = mergeField(user.Bio, req.About)
	user.AvatarURL = mergeField(user.AvatarURL, req.Avatar)
	user.CoverColor = mergeField(user.CoverColor, req.CoverColor)
	user.Profile = mergeProfile(user.Profile, req.Profile)
}

func mergeField(current, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return current
}

func mergeProfile(current models.Profile, update *ProfileUpdate) models.Profile {
	if update == nil {
		return current
	}
	merged := current
	if update.Education != nil {
		merged.Education = update.Education
	}
	if update.Experience != nil {
		merged.Experience = update.Experience
	}
	if update.Skills != nil {
		merged.Skills = update.Skills
	}
	if update.SocialLinks != nil {
		merged.SocialLinks = models.SocialLinks{
			LinkedIn: mergeField(current.SocialLinks.LinkedIn, update.SocialLinks.LinkedIn),
			GitHub:   mergeField(current.SocialLinks.GitHub, update.SocialLinks.GitHub),
			Twitter:  mergeField(current.SocialLinks.Twitter, update.SocialLinks.Twitter),
		}
	}
	return merged
}

func UploadAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be 5MB or smaller"})
		return
	}
	if !storage.AvatarMIMEAllowed(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be a JPG, PNG or GIF image"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	avatarURL, err := mediaGateway.UploadAvatar(ctx, file, user.ID.Hex())
	if err != nil {
		log.Printf("Avatar upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"avatarUrl": avatarURL,
		"updatedAt": time.Now().Unix(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Avatar uploaded successfully",
		"avatarUrl": avatarURL,
	})
}

// userResponse mirrors bio under "about" the way the web client expects.
func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID.Hex(),
		"username":    u.Username,
		"email":       u.Email,
		"name":        u.Name,
		"avatarUrl":   u.AvatarURL,
		"title":       u.Title,
		"location":    u.Location,
		"bio":         u.Bio,
		"about":       u.Bio,
		"coverColor":  u.CoverColor,
		"role":        u.Role,
		"profile":     u.Profile,
		"connections": u.Connections,
		"createdAt":   u.CreatedAt,
		"updatedAt":   u.UpdatedAt,
	}
}

// isUploadFailure reports whether err came from the media gateway rather
// than our own validation.
func isUploadFailure(err error) bool {
	return errors.Is(err, storage.ErrUploadFailed)
}
