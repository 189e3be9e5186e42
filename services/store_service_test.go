package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"deals-service/media"
	"deals-service/models"
	"deals-service/repository"
	"deals-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func logoFile(name string) *media.File {
	return &media.File{Filename: name, ContentType: "image/png", Body: strings.NewReader("png")}
}

func TestCreateStore(t *testing.T) {
	up := &fakeUploader{}
	var created *models.Store
	repo := &mockStoreRepo{
		FindByNameFunc: func(context.Context, string) (*models.Store, error) { return nil, repository.ErrNotFound },
		CreateFunc: func(_ context.Context, s *models.Store) error {
			s.ID = primitive.NewObjectID()
			created = s
			return nil
		},
	}
	svc := services.NewStoreService(repo, up, zap.NewNop())

	store, svcErr := svc.CreateStore(context.Background(), services.StoreInput{
		Name: strPtr(" Acme "), TotalCoupons: intPtr(7), Logo: logoFile("acme.png"),
	})
	require.Nil(t, svcErr)
	assert.Same(t, created, store)
	assert.Equal(t, "Acme", store.Name)
	assert.Equal(t, 7, store.TotalCoupons)
	assert.Equal(t, "https://media.test/uploads/acme.png", store.Logo)
	assert.Equal(t, []string{"acme.png"}, up.uploads)
}

func TestCreateStore_Validation(t *testing.T) {
	up := &fakeUploader{}
	svc := services.NewStoreService(&mockStoreRepo{}, up, zap.NewNop())

	for _, in := range []services.StoreInput{
		{Logo: logoFile("a.png")},
		{Name: strPtr("  "), Logo: logoFile("a.png")},
		{Name: strPtr("Acme")},
	} {
		_, svcErr := svc.CreateStore(context.Background(), in)
		require.NotNil(t, svcErr)
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		assert.Equal(t, "Please provide name and logo", svcErr.Message)
	}
	assert.Empty(t, up.uploads)
}

func TestCreateStore_DuplicateName(t *testing.T) {
	up := &fakeUploader{}
	repo := &mockStoreRepo{
		FindByNameFunc: func(_ context.Context, name string) (*models.Store, error) {
			return &models.Store{Name: name}, nil
		},
	}
	svc := services.NewStoreService(repo, up, zap.NewNop())

	_, svcErr := svc.CreateStore(context.Background(), services.StoreInput{Name: strPtr("Acme"), Logo: logoFile("a.png")})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Store with this name already exists", svcErr.Message)
	assert.Empty(t, up.uploads)
}

func TestCreateStore_RaceOnInsertDiscardsUpload(t *testing.T) {
	up := &fakeUploader{}
	repo := &mockStoreRepo{
		FindByNameFunc: func(context.Context, string) (*models.Store, error) { return nil, repository.ErrNotFound },
		CreateFunc: func(context.Context, *models.Store) error {
			return errors.Join(repository.ErrDuplicate, errors.New("E11000"))
		},
	}
	svc := services.NewStoreService(repo, up, zap.NewNop())

	_, svcErr := svc.CreateStore(context.Background(), services.StoreInput{Name: strPtr("Acme"), Logo: logoFile("a.png")})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, []string{"uploads/a.png"}, up.deleted)
}

func TestGetStore_NotFound(t *testing.T) {
	repo := &mockStoreRepo{
		FindByIDFunc: func(context.Context, string) (*models.Store, error) { return nil, repository.ErrNotFound },
	}
	svc := services.NewStoreService(repo, &fakeUploader{}, zap.NewNop())

	_, svcErr := svc.GetStore(context.Background(), "nope")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Store not found", svcErr.Message)
}

func TestUpdateStore(t *testing.T) {
	id := primitive.NewObjectID()
	existing := &models.Store{ID: id, Name: "Acme", Logo: "https://media.test/uploads/old.png", TotalCoupons: 1}
	var gotUpdates map[string]interface{}
	repo := &mockStoreRepo{
		FindByIDFunc: func(context.Context, string) (*models.Store, error) { return existing, nil },
		UpdateFunc: func(_ context.Context, _ string, updates map[string]interface{}) (*models.Store, error) {
			gotUpdates = updates
			return &models.Store{ID: id, Name: "Acme", Logo: updates["logo"].(string), TotalCoupons: updates["totalCoupons"].(int)}, nil
		},
	}
	up := &fakeUploader{}
	svc := services.NewStoreService(repo, up, zap.NewNop())

	store, svcErr := svc.UpdateStore(context.Background(), id.Hex(), services.StoreInput{
		Name: strPtr("Acme"), TotalCoupons: intPtr(12), Logo: logoFile("new.png"),
	})
	require.Nil(t, svcErr)
	assert.Equal(t, 12, store.TotalCoupons)
	assert.Equal(t, "https://media.test/uploads/new.png", store.Logo)
	assert.NotContains(t, gotUpdates, "name")
	assert.Equal(t, []string{"uploads/old.png"}, up.deleted)
}

func TestUpdateStore_RenameRejected(t *testing.T) {
	repo := &mockStoreRepo{
		FindByIDFunc: func(context.Context, string) (*models.Store, error) { return &models.Store{Name: "Acme"}, nil },
	}
	up := &fakeUploader{}
	svc := services.NewStoreService(repo, up, zap.NewNop())

	_, svcErr := svc.UpdateStore(context.Background(), primitive.NewObjectID().Hex(), services.StoreInput{
		Name: strPtr("Other"), Logo: logoFile("x.png"),
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "Store name cannot be updated", svcErr.Message)
	assert.Empty(t, up.uploads)
}

func TestDeleteStore(t *testing.T) {
	repo := &mockStoreRepo{
		DeleteFunc: func(_ context.Context, id string) error {
			if id == "missing" {
				return repository.ErrNotFound
			}
			return nil
		},
	}
	svc := services.NewStoreService(repo, &fakeUploader{}, zap.NewNop())

	assert.Nil(t, svc.DeleteStore(context.Background(), primitive.NewObjectID().Hex()))
	svcErr := svc.DeleteStore(context.Background(), "missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestCategoryService_CreateAndRename(t *testing.T) {
	up := &fakeUploader{}
	repo := &mockCategoryRepo{
		FindByNameFunc: func(context.Context, string) (*models.Category, error) { return nil, repository.ErrNotFound },
		CreateFunc: func(_ context.Context, c *models.Category) error {
			c.ID = primitive.NewObjectID()
			return nil
		},
		FindByIDFunc: func(context.Context, string) (*models.Category, error) {
			return &models.Category{Name: "Travel"}, nil
		},
	}
	svc := services.NewCategoryService(repo, up, zap.NewNop())

	category, svcErr := svc.CreateCategory(context.Background(), services.CategoryInput{Name: strPtr("Travel"), Image: logoFile("t.png")})
	require.Nil(t, svcErr)
	assert.Equal(t, "https://media.test/uploads/t.png", category.Image)
	assert.Equal(t, 0, category.TotalCoupons)

	_, svcErr = svc.CreateCategory(context.Background(), services.CategoryInput{Name: strPtr("Travel")})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Please provide name and image", svcErr.Message)

	_, svcErr = svc.UpdateCategory(context.Background(), "x", services.CategoryInput{Name: strPtr("Food")})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Category name cannot be updated", svcErr.Message)
}
