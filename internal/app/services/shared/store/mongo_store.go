package store

import (
	"context"
	"errors"
	"hms-portal-service/internal/app/contracts"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"hms-portal-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoStore struct {
	collection *mongo.Collection
	Log        *zap.Logger
}

func NewMongoStore(db *mongo.Database, collectionName string, logger *zap.Logger) contracts.PersistedStore {
	return &mongoStore{
		collection: db.Collection(collectionName),
		Log:        logger,
	}
}

func (s *mongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var document kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		s.Log.Error("mongoStore.Get error calling collection.FindOne",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return "", false, exceptions.ErrMongoFindDocument(err, s.collection.Name())
	}
	return document.Value, true, nil
}

func (s *mongoStore) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		s.Log.Error("mongoStore.Set error calling collection.UpdateOne",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStoreKey, key),
			zap.Error(err),
		)
		return exceptions.ErrMongoUpsert(err, s.collection.Name())
	}
	return nil
}
