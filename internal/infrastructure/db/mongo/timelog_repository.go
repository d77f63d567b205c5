package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

const timelogsCollection = "timelogs"

// TimelogRepository implements ports.TimelogRepository on MongoDB. Domain
// validation runs before every write.
type TimelogRepository struct {
	coll *mongo.Collection
}

func NewTimelogRepository(db *mongo.Database) *TimelogRepository {
	return &TimelogRepository{coll: db.Collection(timelogsCollection)}
}

type mongoTimelog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Description string             `bson:"description"`
	Date        time.Time          `bson:"date"`
	Minutes     int                `bson:"minutes"`
	UserID      primitive.ObjectID `bson:"user"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mt *mongoTimelog) toDomain() *domain.Timelog {
	return &domain.Timelog{
		ID:          mt.ID.Hex(),
		Description: mt.Description,
		Date:        mt.Date.UTC(),
		Minutes:     mt.Minutes,
		UserID:      mt.UserID.Hex(),
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}
}

func (r *TimelogRepository) Create(ctx context.Context, log *domain.Timelog) (*domain.Timelog, error) {
	if err := domain.ValidateTimelog(log); err != nil {
		return nil, err
	}

	ownerID, err := primitive.ObjectIDFromHex(log.UserID)
	if err != nil {
		return nil, domain.ValidationError("user")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoTimelog{
		Description: log.Description,
		Date:        log.Date.UTC(),
		Minutes:     log.Minutes,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert timelog: %w", err)
	}

	created := *log
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *TimelogRepository) FindByID(ctx context.Context, id string) (*domain.Timelog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFoundf("no timelog with ID %s found", id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTimelog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("no timelog with ID %s found", id)
		}
		return nil, fmt.Errorf("find timelog: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TimelogRepository) Find(ctx context.Context, filter ports.TimelogFilter) ([]*domain.Timelog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		dateRange := bson.M{}
		if !filter.From.IsZero() {
			dateRange["$gte"] = filter.From.UTC()
		}
		if !filter.To.IsZero() {
			dateRange["$lte"] = filter.To.UTC()
		}
		query["date"] = dateRange
	}
	if filter.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return nil, nil
		}
		query["user"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find timelogs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*domain.Timelog
	for cursor.Next(ctx) {
		var mt mongoTimelog
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode timelog: %w", err)
		}
		logs = append(logs, mt.toDomain())
	}
	return logs, cursor.Err()
}

func (r *TimelogRepository) Update(ctx context.Context, id string, fields ports.TimelogUpdate) (*domain.Timelog, error) {
	if err := domain.ValidateTimelogFields(fields.Minutes, fields.UserID); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NotFoundf("no timelog with ID %s found", id)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Date != nil {
		set["date"] = fields.Date.UTC()
	}
	if fields.Minutes != nil {
		set["minutes"] = *fields.Minutes
	}
	if fields.UserID != nil {
		ownerID, err := primitive.ObjectIDFromHex(*fields.UserID)
		if err != nil {
			return nil, domain.ValidationError("user")
		}
		set["user"] = ownerID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mt mongoTimelog
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFoundf("no timelog with ID %s found", id)
		}
		return nil, fmt.Errorf("update timelog: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TimelogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NotFoundf("no timelog with ID %s found", id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete timelog: %w", err)
	}
	return nil
}

func (r *TimelogRepository) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user": oid}); err != nil {
		return fmt.Errorf("delete timelogs by user: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner and date indexes used by scoped listings.
func (r *TimelogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
