// file: services/mock_services.go
package services

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"civil-quest-admin/models"
)

var (
	_ AuthServiceInterface        = (*MockAuthService)(nil)
	_ EventServiceInterface       = (*MockEventService)(nil)
	_ AdminServiceInterface       = (*MockAdminService)(nil)
	_ OperatorServiceInterface    = (*MockOperatorService)(nil)
	_ SponsorshipServiceInterface = (*MockSponsorshipService)(nil)
	_ PremiumServiceInterface     = (*MockPremiumService)(nil)
	_ PointsServiceInterface      = (*MockPointsService)(nil)
	_ AnalyticsServiceInterface   = (*MockAnalyticsService)(nil)
	_ AuditServiceInterface       = (*MockAuditService)(nil)
	_ UserServiceInterface        = (*MockUserService)(nil)
	_ GeocoderInterface           = (*MockGeocoder)(nil)
)

// listOf reads a typed slice out of a mock return, tolerating a nil.
func listOf[T any](args mock.Arguments, i int) []T {
	v, _ := args.Get(i).([]T)
	return v
}

// ---- auth ----

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// ---- events ----

type MockEventService struct{ mock.Mock }

func (m *MockEventService) List(ctx context.Context, token string) ([]models.Event, error) {
	args := m.Called(ctx, token)
	return listOf[models.Event](args, 0), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, token, id string) (models.Event, error) {
	args := m.Called(ctx, token, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, token string, fields map[string]any, image *multipart.FileHeader) (models.Event, error) {
	args := m.Called(ctx, token, fields, image)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, token, id string, fields map[string]any, image *multipart.FileHeader) (models.Event, error) {
	args := m.Called(ctx, token, id, fields, image)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) Approve(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *MockEventService) Reject(ctx context.Context, token, id, reason string) error {
	return m.Called(ctx, token, id, reason).Error(0)
}

func (m *MockEventService) End(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *MockEventService) Delete(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

// ---- admins & operators ----

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) List(ctx context.Context, token string) ([]models.ProvincialAdmin, error) {
	args := m.Called(ctx, token)
	return listOf[models.ProvincialAdmin](args, 0), args.Error(1)
}

func (m *MockAdminService) Get(ctx context.Context, token, id string) (models.ProvincialAdmin, error) {
	args := m.Called(ctx, token, id)
	return args.Get(0).(models.ProvincialAdmin), args.Error(1)
}

func (m *MockAdminService) Create(ctx context.Context, token string, fields map[string]any) (models.ProvincialAdmin, error) {
	args := m.Called(ctx, token, fields)
	return args.Get(0).(models.ProvincialAdmin), args.Error(1)
}

func (m *MockAdminService) Update(ctx context.Context, token, id string, fields map[string]any) (models.ProvincialAdmin, error) {
	args := m.Called(ctx, token, id, fields)
	return args.Get(0).(models.ProvincialAdmin), args.Error(1)
}

func (m *MockAdminService) Delete(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

type MockOperatorService struct{ mock.Mock }

func (m *MockOperatorService) List(ctx context.Context, token string) ([]models.AdminOperator, error) {
	args := m.Called(ctx, token)
	return listOf[models.AdminOperator](args, 0), args.Error(1)
}

func (m *MockOperatorService) Create(ctx context.Context, token string, fields map[string]any) (models.AdminOperator, error) {
	args := m.Called(ctx, token, fields)
	return args.Get(0).(models.AdminOperator), args.Error(1)
}

func (m *MockOperatorService) Delete(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

// ---- reviews ----

type MockSponsorshipService struct{ mock.Mock }

func (m *MockSponsorshipService) List(ctx context.Context, token string) ([]models.Sponsor, error) {
	args := m.Called(ctx, token)
	return listOf[models.Sponsor](args, 0), args.Error(1)
}

func (m *MockSponsorshipService) Create(ctx context.Context, token string, fields map[string]any) (models.Sponsor, error) {
	args := m.Called(ctx, token, fields)
	return args.Get(0).(models.Sponsor), args.Error(1)
}

func (m *MockSponsorshipService) Approve(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *MockSponsorshipService) Reject(ctx context.Context, token, id, reason string) error {
	return m.Called(ctx, token, id, reason).Error(0)
}

type MockPremiumService struct{ mock.Mock }

func (m *MockPremiumService) List(ctx context.Context, token string) ([]models.PremiumUserRequest, error) {
	args := m.Called(ctx, token)
	return listOf[models.PremiumUserRequest](args, 0), args.Error(1)
}

func (m *MockPremiumService) Approve(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *MockPremiumService) Reject(ctx context.Context, token, id, reason string) error {
	return m.Called(ctx, token, id, reason).Error(0)
}

// ---- insight ----

type MockPointsService struct{ mock.Mock }

func (m *MockPointsService) List(ctx context.Context, token string) ([]models.PointsConfig, error) {
	args := m.Called(ctx, token)
	return listOf[models.PointsConfig](args, 0), args.Error(1)
}

func (m *MockPointsService) Update(ctx context.Context, token, id string, points float64) error {
	return m.Called(ctx, token, id, points).Error(0)
}

type MockAnalyticsService struct{ mock.Mock }

func (m *MockAnalyticsService) Summary(ctx context.Context, token string) (models.Analytics, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.Analytics), args.Error(1)
}

type MockAuditService struct{ mock.Mock }

func (m *MockAuditService) List(ctx context.Context, token string) ([]models.AuditLog, error) {
	args := m.Called(ctx, token)
	return listOf[models.AuditLog](args, 0), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Search(ctx context.Context, token, query string) ([]models.User, error) {
	args := m.Called(ctx, token, query)
	return listOf[models.User](args, 0), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Search(ctx context.Context, query string) ([]Place, error) {
	args := m.Called(ctx, query)
	return listOf[Place](args, 0), args.Error(1)
}
