package services_test

import (
	"context"
	"io"
	"sync"

	"deals-service/media"
	"deals-service/models"
)

type mockCouponRepo struct {
	CountFunc             func(ctx context.Context, filter map[string]interface{}) (int64, error)
	SumFieldFunc          func(ctx context.Context, field string) (int64, error)
	FindRecentFunc        func(ctx context.Context, limit int64) ([]models.CouponSummary, error)
	FindByReferenceFunc   func(ctx context.Context, field, id string) ([]models.Coupon, error)
	UpdateStatusManyFunc  func(ctx context.Context, ids []string, status bool) (int64, error)
	SetFeaturedFunc       func(ctx context.Context, id string, featured bool) (*models.Coupon, error)
	CreateFunc            func(ctx context.Context, coupon *models.Coupon) error
	FindAllPopulatedFunc  func(ctx context.Context) ([]models.PopulatedCoupon, error)
	FindByIDPopulatedFunc func(ctx context.Context, id string) (*models.PopulatedCoupon, error)
	UpdateFunc            func(ctx context.Context, id string, updates map[string]interface{}) (*models.Coupon, error)
	DeleteFunc            func(ctx context.Context, id string) error
	IncrementFunc         func(ctx context.Context, id, field string) (*models.Coupon, error)
}

func (m *mockCouponRepo) Count(ctx context.Context, filter map[string]interface{}) (int64, error) {
	return m.CountFunc(ctx, filter)
}
func (m *mockCouponRepo) SumField(ctx context.Context, field string) (int64, error) {
	return m.SumFieldFunc(ctx, field)
}
func (m *mockCouponRepo) FindRecent(ctx context.Context, limit int64) ([]models.CouponSummary, error) {
	return m.FindRecentFunc(ctx, limit)
}
func (m *mockCouponRepo) FindByReference(ctx context.Context, field, id string) ([]models.Coupon, error) {
	return m.FindByReferenceFunc(ctx, field, id)
}
func (m *mockCouponRepo) UpdateStatusMany(ctx context.Context, ids []string, status bool) (int64, error) {
	return m.UpdateStatusManyFunc(ctx, ids, status)
}
func (m *mockCouponRepo) SetFeatured(ctx context.Context, id string, featured bool) (*models.Coupon, error) {
	return m.SetFeaturedFunc(ctx, id, featured)
}
func (m *mockCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	return m.CreateFunc(ctx, coupon)
}
func (m *mockCouponRepo) FindAllPopulated(ctx context.Context) ([]models.PopulatedCoupon, error) {
	return m.FindAllPopulatedFunc(ctx)
}
func (m *mockCouponRepo) FindByIDPopulated(ctx context.Context, id string) (*models.PopulatedCoupon, error) {
	return m.FindByIDPopulatedFunc(ctx, id)
}
func (m *mockCouponRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Coupon, error) {
	return m.UpdateFunc(ctx, id, updates)
}
func (m *mockCouponRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockCouponRepo) Increment(ctx context.Context, id, field string) (*models.Coupon, error) {
	return m.IncrementFunc(ctx, id, field)
}

type mockStoreRepo struct {
	FindByIDFunc   func(ctx context.Context, id string) (*models.Store, error)
	FindByNameFunc func(ctx context.Context, name string) (*models.Store, error)
	FindAllFunc    func(ctx context.Context) ([]models.Store, error)
	FindRecentFunc func(ctx context.Context, limit int64) ([]models.Store, error)
	CountFunc      func(ctx context.Context) (int64, error)
	CreateFunc     func(ctx context.Context, store *models.Store) error
	UpdateFunc     func(ctx context.Context, id string, updates map[string]interface{}) (*models.Store, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id string) (*models.Store, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockStoreRepo) FindByName(ctx context.Context, name string) (*models.Store, error) {
	return m.FindByNameFunc(ctx, name)
}
func (m *mockStoreRepo) FindAll(ctx context.Context) ([]models.Store, error) {
	return m.FindAllFunc(ctx)
}
func (m *mockStoreRepo) FindRecent(ctx context.Context, limit int64) ([]models.Store, error) {
	return m.FindRecentFunc(ctx, limit)
}
func (m *mockStoreRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}
func (m *mockStoreRepo) Create(ctx context.Context, store *models.Store) error {
	return m.CreateFunc(ctx, store)
}
func (m *mockStoreRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Store, error) {
	return m.UpdateFunc(ctx, id, updates)
}
func (m *mockStoreRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockCategoryRepo struct {
	FindByIDFunc   func(ctx context.Context, id string) (*models.Category, error)
	FindByNameFunc func(ctx context.Context, name string) (*models.Category, error)
	FindAllFunc    func(ctx context.Context) ([]models.Category, error)
	FindRecentFunc func(ctx context.Context, limit int64) ([]models.Category, error)
	CountFunc      func(ctx context.Context) (int64, error)
	CreateFunc     func(ctx context.Context, category *models.Category) error
	UpdateFunc     func(ctx context.Context, id string, updates map[string]interface{}) (*models.Category, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return m.FindByNameFunc(ctx, name)
}
func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	return m.FindAllFunc(ctx)
}
func (m *mockCategoryRepo) FindRecent(ctx context.Context, limit int64) ([]models.Category, error) {
	return m.FindRecentFunc(ctx, limit)
}
func (m *mockCategoryRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}
func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	return m.CreateFunc(ctx, category)
}
func (m *mockCategoryRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Category, error) {
	return m.UpdateFunc(ctx, id, updates)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockUserRepo struct {
	CountFunc       func(ctx context.Context) (int64, error)
	FindAllFunc     func(ctx context.Context) ([]models.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	UpdateFunc      func(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.FindAllFunc(ctx)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.FindByIDFunc(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFunc(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.User, error) {
	return m.UpdateFunc(ctx, id, updates)
}

// fakeUploader records uploads and deletions in memory.
type fakeUploader struct {
	mu        sync.Mutex
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeUploader) Upload(_ context.Context, file media.File) (*media.Asset, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	_, _ = io.ReadAll(file.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, file.Filename)
	id := "uploads/" + file.Filename
	return &media.Asset{URL: "https://media.test/" + id, PublicID: id}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeUploader) PublicIDFromURL(url string) string {
	const prefix = "https://media.test/"
	if len(url) <= len(prefix) || url[:len(prefix)] != prefix {
		return ""
	}
	return url[len(prefix):]
}

type countingMetrics struct {
	mu    sync.Mutex
	names []string
}

func (c *countingMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
	return nil
}

func (c *countingMetrics) recorded() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

// blockingMetrics holds every RecordCount until release is closed.
type blockingMetrics struct {
	release chan struct{}
	done    chan string
}

func newBlockingMetrics() *blockingMetrics {
	return &blockingMetrics{release: make(chan struct{}), done: make(chan string, 8)}
}

func (b *blockingMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	<-b.release
	b.done <- name
	return nil
}
