package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var Users *mongo.Collection
var Posts *mongo.Collection
var Comments *mongo.Collection
var Likes *mongo.Collection
var Conversations *mongo.Collection
var Messages *mongo.Collection
var Events *mongo.Collection
var Sessions *mongo.Collection

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	db := Client.Database(dbName)
	Users = db.Collection("users")
	Posts = db.Collection("posts")
	Comments = db.Collection("comments")
	Likes = db.Collection("likes")
	Conversations = db.Collection("conversations")
	Messages = db.Collection("messages")
	Events = db.Collection("events")
	Sessions = db.Collection("sessions")

	log.Println("Connected to MongoDB successfully")
	return nil
}

// EnsureIndexes creates the unique indexes backing the uniqueness
// invariants: usernames, emails, and one like per (user, target) pair.
func EnsureIndexes(ctx context.Context) error {
	_, err := Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = Likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "targetType", Value: 1},
			{Key: "targetId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = Messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}

func Disconnect() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
