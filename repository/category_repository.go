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

type MongoCategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{collection: db.Collection(database.CategoriesCollection)}
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *MongoCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// FindAll returns every category, newest first.
func (r *MongoCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoCategoryRepository) FindRecent(ctx context.Context, limit int64) ([]models.Category, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
}

func (r *MongoCategoryRepository) find(ctx context.Context, opts *options.FindOptions) ([]models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (r *MongoCategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	category.CreatedAt, category.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return translate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

// Update applies a $set and returns the document as it is after the write.
func (r *MongoCategoryRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Category, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var category models.Category
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": stampUpdate(updates)}, opts).Decode(&category)
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
