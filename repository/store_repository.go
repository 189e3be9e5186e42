package repository

import (
	"context"
	"fmt"
	"time"

	"deals-service/database"
	"deals-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStoreRepository struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *MongoStoreRepository {
	return &MongoStoreRepository{collection: db.Collection(database.StoresCollection)}
}

func (r *MongoStoreRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var store models.Store
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&store); err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func (r *MongoStoreRepository) FindByName(ctx context.Context, name string) (*models.Store, error) {
	var store models.Store
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&store); err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

// FindAll returns every store, newest first.
func (r *MongoStoreRepository) FindAll(ctx context.Context) ([]models.Store, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoStoreRepository) FindRecent(ctx context.Context, limit int64) ([]models.Store, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
}

func (r *MongoStoreRepository) find(ctx context.Context, opts *options.FindOptions) ([]models.Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := []models.Store{}
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return stores, nil
}

func (r *MongoStoreRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	now := time.Now().UTC()
	store.CreatedAt, store.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, store)
	if err != nil {
		return translate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		store.ID = oid
	}
	return nil
}

// Update applies a $set and returns the document as it is after the write.
func (r *MongoStoreRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Store, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var store models.Store
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": stampUpdate(updates)}, opts).Decode(&store)
	if err != nil {
		return nil, translate(err)
	}
	return &store, nil
}

func (r *MongoStoreRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
