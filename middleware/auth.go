package middleware

import (
	"context"
	"net/http"
	"time"

	"communityconnect/database"
	"communityconnect/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// sessionUserKey is the key under which the authenticated user's ID is
// stored in the server-side session document.
const sessionUserKey = "userId"

// userContextKey carries the freshly loaded user through the request.
const userContextKey = "currentUser"

// BindSessionUser records the user identity in the session after a
// successful login or registration.
func BindSessionUser(c *gin.Context, userID primitive.ObjectID) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, userID.Hex())
	return sess.Save()
}

// ClearSession destroys the current session. Safe to call when no session
// exists.
func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{MaxAge: -1, Path: "/", HttpOnly: true})
	return sess.Save()
}

// RequireAuth gates protected routes. It resolves the session's user ID and
// re-reads the authoritative user record so ownership and role checks never
// act on stale session data.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		sess := sessions.Default(c)
		raw, _ := sess.Get(sessionUserKey).(string)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		err = database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			// Session points at a deleted account; treat as logged out.
			_ = ClearSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			c.Abort()
			return
		}

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth, or nil on
// unprotected routes.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
