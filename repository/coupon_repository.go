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

// Counter fields that may be incremented through Increment.
const (
	FieldClickCount = "clickCount"
	FieldUsedCount  = "usedCount"
)

type MongoCouponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *MongoCouponRepository {
	return &MongoCouponRepository{collection: db.Collection(database.CouponsCollection)}
}

func (r *MongoCouponRepository) Count(ctx context.Context, filter map[string]interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// SumField totals a numeric field over the whole collection. An empty collection sums to 0.
func (r *MongoCouponRepository) SumField(ctx context.Context, field string) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode %s sum: %w", field, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// FindRecent returns the newest coupons with store and category reduced to {_id, name}.
func (r *MongoCouponRepository) FindRecent(ctx context.Context, limit int64) ([]models.CouponSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, lookupStage(database.StoresCollection, "store", true)...)
	pipeline = append(pipeline, lookupStage(database.CategoriesCollection, "category", true)...)

	coupons := []models.CouponSummary{}
	if err := r.aggregate(ctx, pipeline, &coupons); err != nil {
		return nil, fmt.Errorf("recent coupons: %w", err)
	}
	return coupons, nil
}

// FindByReference returns the coupons whose store or category reference equals id,
// in natural order. A malformed id matches nothing.
func (r *MongoCouponRepository) FindByReference(ctx context.Context, field, id string) ([]models.Coupon, error) {
	coupons := []models.Coupon{}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return coupons, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{field: oid})
	if err != nil {
		return nil, fmt.Errorf("find coupons by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return coupons, nil
}

// UpdateStatusMany sets status on every coupon in ids with a single updateMany.
// Ids that are malformed or match nothing are skipped. The write is not transactional:
// documents updated before a failure stay updated. It returns the modified count.
func (r *MongoCouponRepository) UpdateStatusMany(ctx context.Context, ids []string, status bool) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("bulk status update: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoCouponRepository) SetFeatured(ctx context.Context, id string, featured bool) (*models.Coupon, error) {
	return r.Update(ctx, id, map[string]interface{}{"featured": featured})
}

func (r *MongoCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	now := time.Now().UTC()
	coupon.CreatedAt, coupon.UpdatedAt = now, now
	res, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return translate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid
	}
	return nil
}

// FindAllPopulated returns every coupon with full store and category documents.
func (r *MongoCouponRepository) FindAllPopulated(ctx context.Context) ([]models.PopulatedCoupon, error) {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, lookupStage(database.StoresCollection, "store", false)...)
	pipeline = append(pipeline, lookupStage(database.CategoriesCollection, "category", false)...)

	coupons := []models.PopulatedCoupon{}
	if err := r.aggregate(ctx, pipeline, &coupons); err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, nil
}

func (r *MongoCouponRepository) FindByIDPopulated(ctx context.Context, id string) (*models.PopulatedCoupon, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		{{Key: "$limit", Value: 1}},
	}
	pipeline = append(pipeline, lookupStage(database.StoresCollection, "store", false)...)
	pipeline = append(pipeline, lookupStage(database.CategoriesCollection, "category", false)...)

	var coupons []models.PopulatedCoupon
	if err := r.aggregate(ctx, pipeline, &coupons); err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if len(coupons) == 0 {
		return nil, ErrNotFound
	}
	return &coupons[0], nil
}

func (r *MongoCouponRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Coupon, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": stampUpdate(updates)})
}

func (r *MongoCouponRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Increment atomically adds one to a counter field, keeping the counters monotonic.
func (r *MongoCouponRepository) Increment(ctx context.Context, id, field string) (*models.Coupon, error) {
	if field != FieldClickCount && field != FieldUsedCount {
		return nil, fmt.Errorf("field %q is not a coupon counter", field)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx, oid, bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoCouponRepository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*models.Coupon, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var coupon models.Coupon
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&coupon); err != nil {
		return nil, translate(err)
	}
	return &coupon, nil
}

func (r *MongoCouponRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// lookupStage resolves a reference field in place. With nameOnly the joined document is
// projected down to {_id, name}. Dangling references unwind to a missing field.
func lookupStage(from, field string, nameOnly bool) mongo.Pipeline {
	lookup := bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: field},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: field},
	}
	if nameOnly {
		lookup = bson.D{
			{Key: "from", Value: from},
			{Key: "let", Value: bson.D{{Key: "ref", Value: "$" + field}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$ref"}}}}}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "name", Value: 1}}}},
			}},
			{Key: "as", Value: field},
		}
	}
	return mongo.Pipeline{
		{{Key: "$lookup", Value: lookup}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
