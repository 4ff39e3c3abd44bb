package carepackages

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCarePackageRepository struct {
	mock.Mock
}

func (m *MockCarePackageRepository) ListActive(ctx context.Context, patientID string) ([]models.CarePackage, error) {
	args := m.Called(ctx, patientID)
	if packages := args.Get(0); packages != nil {
		return packages.([]models.CarePackage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarePackageRepository) FindByID(ctx context.Context, packageID string) (*models.CarePackage, error) {
	args := m.Called(ctx, packageID)
	if carePackage := args.Get(0); carePackage != nil {
		return carePackage.(*models.CarePackage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarePackageRepository) DecrementSession(ctx context.Context, packageID string, usage models.CarePackageUsage) (*models.CarePackage, error) {
	args := m.Called(ctx, packageID, usage)
	if carePackage := args.Get(0); carePackage != nil {
		return carePackage.(*models.CarePackage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCarePackageRepository) RestoreSession(ctx context.Context, packageID string) error {
	args := m.Called(ctx, packageID)
	return args.Error(0)
}

func newCarePackageUsecaseForTest() (*carePackageUsecase, *MockCarePackageRepository) {
	repository := new(MockCarePackageRepository)
	uc := &carePackageUsecase{
		CarePackageRepository: repository,
		Log:                   zap.NewNop(),
	}
	return uc, repository
}

func TestListActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns Patient Packages", func(t *testing.T) {
		uc, repository := newCarePackageUsecaseForTest()
		expected := []models.CarePackage{
			{ID: "pkg-001", PatientID: "patient-001", Name: "Therapy 10-pack", RemainingSessions: 4},
		}

		repository.On("ListActive", mock.Anything, "patient-001").Return(expected, nil)

		packages, err := uc.ListActive(ctx, "patient-001")

		require.NoError(t, err)
		assert.Equal(t, expected, packages)
	})

	t.Run("Propagates Repository Error", func(t *testing.T) {
		uc, repository := newCarePackageUsecaseForTest()

		repository.On("ListActive", mock.Anything, "patient-001").Return(nil, errors.New("mongo unavailable"))

		_, err := uc.ListActive(ctx, "patient-001")

		require.Error(t, err)
	})
}

func TestUseSession(t *testing.T) {
	ctx := context.Background()
	usage := models.CarePackageUsage{
		PackageID:    "pkg-001",
		VisitID:      "visit-001",
		BillingCodes: []string{"EXAM-STD"},
		UsedBy:       "operator-7",
		UsedAt:       time.Now(),
	}

	t.Run("Decrements One Session", func(t *testing.T) {
		uc, repository := newCarePackageUsecaseForTest()
		updated := &models.CarePackage{ID: "pkg-001", TotalSessions: 10, RemainingSessions: 3}

		repository.On("DecrementSession", mock.Anything, "pkg-001", usage).Return(updated, nil)

		carePackage, err := uc.UseSession(ctx, "pkg-001", usage)

		require.NoError(t, err)
		assert.Equal(t, 3, carePackage.RemainingSessions)
		repository.AssertExpectations(t)
	})

	t.Run("Exhausted Package Surfaces Conflict", func(t *testing.T) {
		uc, repository := newCarePackageUsecaseForTest()
		exhaustedErr := exceptions.ErrCarePackageExhausted(errors.New("care package pkg-001 has no remaining sessions"))

		repository.On("DecrementSession", mock.Anything, "pkg-001", usage).Return(nil, exhaustedErr)

		_, err := uc.UseSession(ctx, "pkg-001", usage)

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok, "error should be a CustomError, got %T", err)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode, "an exhausted package is a conflict, not a generic failure")
	})

	t.Run("Unknown Package Surfaces Not Found", func(t *testing.T) {
		uc, repository := newCarePackageUsecaseForTest()
		notFoundErr := exceptions.ErrCarePackageNotFound(errors.New("care package pkg-404 does not exist"))

		repository.On("DecrementSession", mock.Anything, "pkg-404", usage).Return(nil, notFoundErr)

		_, err := uc.UseSession(ctx, "pkg-404", usage)

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestCarePackageModel(t *testing.T) {
	t.Run("IsExhausted", func(t *testing.T) {
		assert.True(t, (&models.CarePackage{RemainingSessions: 0}).IsExhausted())
		assert.False(t, (&models.CarePackage{RemainingSessions: 1}).IsExhausted())
	})

	t.Run("Covers", func(t *testing.T) {
		carePackage := &models.CarePackage{LinkedBillingCodes: []string{"EXAM-STD", "THER-PT"}}
		assert.True(t, carePackage.Covers("THER-PT"))
		assert.False(t, carePackage.Covers("LAB-CBC"))
	})
}
