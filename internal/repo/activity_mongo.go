package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikazeem2001/inventory/internal/db"
	"github.com/shaikazeem2001/inventory/internal/models"
)

type MongoActivityRepository struct {
	coll *mongo.Collection
}

func NewMongoActivityRepository(mdb *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{coll: mdb.Collection(db.LogsCollection)}
}

func (r *MongoActivityRepository) Append(ctx context.Context, l models.ActivityLog) (models.ActivityLog, error) {
	if l.Action == "" {
		return models.ActivityLog{}, errEmptyAction
	}
	prepareLog(&l, time.Now().UTC())

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return models.ActivityLog{}, fmt.Errorf("failed to insert activity log: %w", err)
	}
	return l, nil
}

func (r *MongoActivityRepository) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(logLimit(limit)))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := []models.ActivityLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
