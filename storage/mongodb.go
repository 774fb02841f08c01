package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const historyCollection = "diary_history"

// MongoStore persists history records in the diary_history collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	coll := client.Database(dbName).Collection(historyCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "generated_at", Value: -1}},
	})
	if err != nil {
		log.Printf("failed to create history index: %v", err)
	}

	log.Printf("Connected to MongoDB, history collection %s.%s", dbName, historyCollection)
	return &MongoStore{client: client, collection: coll}, nil
}

func (s *MongoStore) Save(ctx context.Context, rec dto.HistoryRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

func (s *MongoStore) Recent(ctx context.Context, limit int) ([]dto.HistoryRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(int64(ClampLimit(limit)))

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cursor.Close(ctx)

	records := []dto.HistoryRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return records, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("MongoDB connection closed")
	return nil
}
