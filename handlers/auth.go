package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/middleware"
	"communityconnect/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Uniqueness check on username OR email; the unique indexes catch the
	// race between check and insert.
	count, err := database.Users.CountDocuments(ctx, duplicateUserFilter(req.Username, req.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now().Unix()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Name:         req.Name,
		Role:         models.RoleUser,
		Profile: models.Profile{
			Education:  []models.Education{},
			Experience: []models.Experience{},
			Skills:     []string{},
		},
		Connections: []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		if isUserConflict(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("Register insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// duplicateUserFilter matches any account already holding the username or
// the email, so a collision on either field counts as an existing user.
func duplicateUserFilter(username, email string) bson.M {
	return bson.M{
		"$or": []bson.M{{"email": email}, {"username": username}},
	}
}

// isUserConflict reports whether an insert bounced off the unique
// username/email indexes.
func isUserConflict(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := middleware.BindSessionUser(c, user.ID); err != nil {
		log.Printf("Login session save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
		},
	})
}

// Logout destroys the session. Calling it without a session still returns
// 200.
func Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
