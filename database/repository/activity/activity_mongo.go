package activityRepo

import (
	"context"
	"fmt"
	"time"

	"facestudio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "activity"

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo binds the repository to db and makes sure its indexes exist.
func NewMongoActivityRepo(db *mongo.Database) (*MongoActivityRepo, error) {
	repo := &MongoActivityRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoActivityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reservation_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create activity indexes: %w", err)
	}
	return nil
}

func (r *MongoActivityRepo) Record(ctx context.Context, event models.ActivityEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("record activity %s: %w", event.Type, err)
	}
	return nil
}

func (r *MongoActivityRepo) ListByReservation(ctx context.Context, reservationID int64) ([]models.ActivityEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"reservation_id": reservationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.ActivityEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return events, nil
}
