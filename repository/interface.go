package repository

import (
	"context"
	"errors"
	"time"

	"deals-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned for an identifier that matches no document. A malformed
// identifier yields the same error, callers cannot tell the two apart.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a write violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

// StoreRepository defines the store operations used by the services.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*models.Store, error)
	FindByName(ctx context.Context, name string) (*models.Store, error)
	FindAll(ctx context.Context) ([]models.Store, error)
	FindRecent(ctx context.Context, limit int64) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Store, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the category operations used by the services.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	FindRecent(ctx context.Context, limit int64) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// CouponRepository defines the coupon operations, including the aggregate reads
// and bulk writes behind the admin analytics.
type CouponRepository interface {
	Count(ctx context.Context, filter map[string]interface{}) (int64, error)
	SumField(ctx context.Context, field string) (int64, error)
	FindRecent(ctx context.Context, limit int64) ([]models.CouponSummary, error)
	FindByReference(ctx context.Context, field, id string) ([]models.Coupon, error)
	UpdateStatusMany(ctx context.Context, ids []string, status bool) (int64, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*models.Coupon, error)

	Create(ctx context.Context, coupon *models.Coupon) error
	FindAllPopulated(ctx context.Context) ([]models.PopulatedCoupon, error)
	FindByIDPopulated(ctx context.Context, id string) (*models.PopulatedCoupon, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Coupon, error)
	Delete(ctx context.Context, id string) error
	Increment(ctx context.Context, id, field string) (*models.Coupon, error)
}

// UserRepository defines the admin user operations.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error)
}

// parseID converts a hex identifier, folding malformed input into ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}

func stampUpdate(updates map[string]interface{}) map[string]interface{} {
	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	set["updatedAt"] = time.Now().UTC()
	return set
}
