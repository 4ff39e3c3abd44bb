package billing

import (
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/dto/requests"
	"caredesk-service/internal/pkg/exceptions"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) FindByID(ctx context.Context, visitID string) (*models.Visit, error) {
	args := m.Called(ctx, visitID)
	if visit := args.Get(0); visit != nil {
		return visit.(*models.Visit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVisitRepository) TransitionStatus(ctx context.Context, visitID string, status models.VisitStatus) error {
	args := m.Called(ctx, visitID, status)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Find(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *models.CheckoutSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, visitID string) error {
	args := m.Called(ctx, visitID)
	return args.Error(0)
}

type MockInsuranceProfileRepository struct {
	mock.Mock
}

func (m *MockInsuranceProfileRepository) ListByPatient(ctx context.Context, patientID string) ([]models.InsuranceProfile, error) {
	args := m.Called(ctx, patientID)
	if profiles := args.Get(0); profiles != nil {
		return profiles.([]models.InsuranceProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockBillingEntryRepository struct {
	mock.Mock
}

func (m *MockBillingEntryRepository) InsertBillingEntry(ctx context.Context, visitID string, item models.LineItem) error {
	args := m.Called(ctx, visitID, item)
	return args.Error(0)
}

func (m *MockBillingEntryRepository) DeleteBillingEntry(ctx context.Context, visitID, code string) error {
	args := m.Called(ctx, visitID, code)
	return args.Error(0)
}

func (m *MockBillingEntryRepository) InsertDiagnosticEntry(ctx context.Context, visitID, code, description, recordedBy string) error {
	args := m.Called(ctx, visitID, code, description, recordedBy)
	return args.Error(0)
}

func (m *MockBillingEntryRepository) DeleteDiagnosticEntry(ctx context.Context, visitID, code string) error {
	args := m.Called(ctx, visitID, code)
	return args.Error(0)
}

type billingMocks struct {
	visits    *MockVisitRepository
	sessions  *MockSessionRepository
	insurance *MockInsuranceProfileRepository
	entries   *MockBillingEntryRepository
}

func newBillingUsecaseForTest() (*billingUsecase, *billingMocks) {
	mocks := &billingMocks{
		visits:    new(MockVisitRepository),
		sessions:  new(MockSessionRepository),
		insurance: new(MockInsuranceProfileRepository),
		entries:   new(MockBillingEntryRepository),
	}
	uc := &billingUsecase{
		VisitRepository:            mocks.visits,
		SessionRepository:          mocks.sessions,
		InsuranceProfileRepository: mocks.insurance,
		BillingEntryRepository:     mocks.entries,
		Log:                        zap.NewNop(),
	}
	return uc, mocks
}

func completedVisit() *models.Visit {
	return &models.Visit{
		ID:        "visit-001",
		PatientID: "patient-001",
		Status:    models.VisitCompleted,
	}
}

func openSession() *models.CheckoutSession {
	return &models.CheckoutSession{
		VisitID:   "visit-001",
		PatientID: "patient-001",
		State:     models.CheckoutOpen,
		Revision:  1,
		LineItems: []models.LineItem{
			{Code: "EXAM-STD", Description: "Standard exam", UnitPriceCents: 4500, Units: 1, InsuranceCovered: true},
		},
		Overrides: map[string]models.CoverageOverride{},
		Coverage: &models.CoverageResult{
			Revision:      1,
			SelfPay:       true,
			SubtotalCents: 4500,
			PatientCents:  4500,
		},
	}
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "error should be a CustomError, got %T", err)
	return customErr.StatusCode
}

func TestAddLineItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds Item And Recomputes Coverage", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		session := openSession()
		session.Payment = &models.PaymentRecord{Status: models.PaymentPaid}

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(session, nil)
		mocks.entries.On("InsertBillingEntry", mock.Anything, "visit-001", mock.AnythingOfType("models.LineItem")).Return(nil)
		mocks.insurance.On("ListByPatient", mock.Anything, "patient-001").Return([]models.InsuranceProfile{}, nil)
		mocks.sessions.On("Save", mock.Anything, session).Return(nil)

		updated, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "20.00",
			Units:       1,
			Operator:    "operator-7",
		})

		require.NoError(t, err)
		require.Len(t, updated.LineItems, 2)
		added := updated.LineItems[1]
		assert.Equal(t, "LAB-CBC", added.Code)
		assert.Equal(t, int64(2000), added.UnitPriceCents)
		assert.Equal(t, "operator-7", added.AddedBy)
		assert.Equal(t, 2, updated.Revision, "a ledger edit should bump the revision")
		assert.Nil(t, updated.Payment, "a ledger edit should invalidate the payment")
		assert.Equal(t, int64(6500), updated.Coverage.SubtotalCents, "coverage should be recomputed eagerly")
		assert.Equal(t, updated.Revision, updated.Coverage.Revision)
	})

	t.Run("Creates Session On First Item", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(nil, nil)
		mocks.entries.On("InsertBillingEntry", mock.Anything, "visit-001", mock.Anything).Return(nil)
		mocks.insurance.On("ListByPatient", mock.Anything, "patient-001").Return([]models.InsuranceProfile{}, nil)
		mocks.sessions.On("Save", mock.Anything, mock.AnythingOfType("*models.CheckoutSession")).Return(nil)

		session, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "EXAM-STD",
			Description: "Standard exam",
			UnitPrice:   "45.00",
			Operator:    "operator-7",
		})

		require.NoError(t, err)
		assert.Equal(t, "patient-001", session.PatientID)
		assert.Equal(t, models.CheckoutOpen, session.State)
		require.Len(t, session.LineItems, 1)
		assert.Equal(t, 1, session.LineItems[0].Units, "omitted units should default to one")
	})

	t.Run("Rejects Duplicate Code", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		_, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "EXAM-STD",
			Description: "Standard exam again",
			UnitPrice:   "45.00",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		mocks.entries.AssertNotCalled(t, "InsertBillingEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Negative Price", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		_, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "-5.00",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
		mocks.entries.AssertNotCalled(t, "InsertBillingEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Malformed Price", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		_, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "20.005",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
	})

	t.Run("Rejects Checked Out Visit", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		visit := completedVisit()
		visit.Status = models.VisitCheckedOut

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(visit, nil)

		_, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "20.00",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
	})

	t.Run("Rejects Committed Session", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		session := openSession()
		session.State = models.CheckoutCommitted

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(session, nil)

		_, err := uc.AddLineItem(ctx, "visit-001", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "20.00",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
	})

	t.Run("Rejects Unknown Visit", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-404").Return(nil, nil)

		_, err := uc.AddLineItem(ctx, "visit-404", &requests.AddLineItem{
			Code:        "LAB-CBC",
			Description: "Blood panel",
			UnitPrice:   "20.00",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})
}

func TestUpdateLineItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial Update", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		session := openSession()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(session, nil)
		mocks.entries.On("DeleteBillingEntry", mock.Anything, "visit-001", "EXAM-STD").Return(nil)
		mocks.entries.On("InsertBillingEntry", mock.Anything, "visit-001", mock.Anything).Return(nil)
		mocks.insurance.On("ListByPatient", mock.Anything, "patient-001").Return([]models.InsuranceProfile{}, nil)
		mocks.sessions.On("Save", mock.Anything, session).Return(nil)

		units := 2
		updated, err := uc.UpdateLineItem(ctx, "visit-001", "EXAM-STD", &requests.UpdateLineItem{
			Units:    &units,
			Operator: "operator-7",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, updated.LineItems[0].Units)
		assert.Equal(t, "Standard exam", updated.LineItems[0].Description, "untouched fields should be preserved")
		assert.Equal(t, int64(9000), updated.Coverage.SubtotalCents)
		assert.Equal(t, 2, updated.Revision)
	})

	t.Run("Rejects Zero Units", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		units := 0
		_, err := uc.UpdateLineItem(ctx, "visit-001", "EXAM-STD", &requests.UpdateLineItem{
			Units:    &units,
			Operator: "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
		mocks.entries.AssertNotCalled(t, "InsertBillingEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Negative Price", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		price := "-45.00"
		_, err := uc.UpdateLineItem(ctx, "visit-001", "EXAM-STD", &requests.UpdateLineItem{
			UnitPrice: &price,
			Operator:  "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
	})

	t.Run("Unknown Code", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		units := 2
		_, err := uc.UpdateLineItem(ctx, "visit-001", "XRAY-CHEST", &requests.UpdateLineItem{
			Units:    &units,
			Operator: "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})
}

func TestRemoveLineItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Item And Prunes Planned Uses", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		session := openSession()
		session.LineItems = append(session.LineItems, models.LineItem{
			Code: "LAB-CBC", Description: "Blood panel", UnitPriceCents: 2000, Units: 1,
		})
		session.PlannedUses = []models.PlannedPackageUse{
			{PackageID: "pkg-001", BillingCode: "EXAM-STD"},
			{PackageID: "pkg-002", BillingCode: "LAB-CBC"},
		}

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(session, nil)
		mocks.entries.On("DeleteBillingEntry", mock.Anything, "visit-001", "EXAM-STD").Return(nil)
		mocks.insurance.On("ListByPatient", mock.Anything, "patient-001").Return([]models.InsuranceProfile{}, nil)
		mocks.sessions.On("Save", mock.Anything, session).Return(nil)

		updated, err := uc.RemoveLineItem(ctx, "visit-001", "EXAM-STD")

		require.NoError(t, err)
		require.Len(t, updated.LineItems, 1)
		assert.Equal(t, "LAB-CBC", updated.LineItems[0].Code)
		require.Len(t, updated.PlannedUses, 1)
		assert.Equal(t, "pkg-002", updated.PlannedUses[0].PackageID, "planned uses for the struck code should be pruned")
		assert.Equal(t, int64(2000), updated.Coverage.SubtotalCents)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.sessions.On("Find", mock.Anything, "visit-001").Return(openSession(), nil)

		_, err := uc.RemoveLineItem(ctx, "visit-001", "XRAY-CHEST")

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})
}

func TestAddDiagnosticEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("Records Entry With Operator", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.entries.On("InsertDiagnosticEntry", mock.Anything, "visit-001", "J06-9", "Acute upper respiratory infection", "operator-7").Return(nil)

		err := uc.AddDiagnosticEntry(ctx, "visit-001", &requests.AddDiagnosticEntry{
			Code:        "J06-9",
			Description: "Acute upper respiratory infection",
			Operator:    "operator-7",
		})

		require.NoError(t, err)
		mocks.sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		mocks.entries.AssertExpectations(t)
	})

	t.Run("Rejects Checked Out Visit", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		visit := completedVisit()
		visit.Status = models.VisitCheckedOut

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(visit, nil)

		err := uc.AddDiagnosticEntry(ctx, "visit-001", &requests.AddDiagnosticEntry{
			Code:        "J06-9",
			Description: "Acute upper respiratory infection",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
	})

	t.Run("Rejects Unknown Visit", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-404").Return(nil, nil)

		err := uc.AddDiagnosticEntry(ctx, "visit-404", &requests.AddDiagnosticEntry{
			Code:        "J06-9",
			Description: "Acute upper respiratory infection",
			Operator:    "operator-7",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})
}

func TestRemoveDiagnosticEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Entry", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(completedVisit(), nil)
		mocks.entries.On("DeleteDiagnosticEntry", mock.Anything, "visit-001", "J06-9").Return(nil)

		err := uc.RemoveDiagnosticEntry(ctx, "visit-001", "J06-9")

		require.NoError(t, err)
		mocks.entries.AssertExpectations(t)
	})

	t.Run("Rejects Checked Out Visit", func(t *testing.T) {
		uc, mocks := newBillingUsecaseForTest()
		visit := completedVisit()
		visit.Status = models.VisitCheckedOut

		mocks.visits.On("FindByID", mock.Anything, "visit-001").Return(visit, nil)

		err := uc.RemoveDiagnosticEntry(ctx, "visit-001", "J06-9")

		require.Error(t, err)
		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		mocks.entries.AssertNotCalled(t, "DeleteDiagnosticEntry", mock.Anything, mock.Anything, mock.Anything)
	})
}
