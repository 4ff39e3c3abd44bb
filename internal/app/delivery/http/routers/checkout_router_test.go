package routers

import (
	"bytes"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/app/services/core/billing"
	"caredesk-service/internal/app/services/core/checkout"
	"caredesk-service/internal/pkg/dto/requests"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBillingUsecase struct {
	mock.Mock
}

func (m *MockBillingUsecase) AddLineItem(ctx context.Context, visitID string, request *requests.AddLineItem) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillingUsecase) UpdateLineItem(ctx context.Context, visitID, code string, request *requests.UpdateLineItem) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, code, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillingUsecase) RemoveLineItem(ctx context.Context, visitID, code string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, code)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillingUsecase) AddDiagnosticEntry(ctx context.Context, visitID string, request *requests.AddDiagnosticEntry) error {
	args := m.Called(ctx, visitID, request)
	return args.Error(0)
}

func (m *MockBillingUsecase) RemoveDiagnosticEntry(ctx context.Context, visitID, code string) error {
	args := m.Called(ctx, visitID, code)
	return args.Error(0)
}

type MockCheckoutUsecase struct {
	mock.Mock
}

func (m *MockCheckoutUsecase) GetSession(ctx context.Context, visitID string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) SetOverride(ctx context.Context, visitID, code string, request *requests.SetCoverageOverride) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, code, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) PlanPackageUse(ctx context.Context, visitID string, request *requests.PlanPackageUse) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) ComputePayment(ctx context.Context, visitID string, request *requests.ComputePayment) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) ConfirmPayment(ctx context.Context, visitID, operator string) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, operator)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) CaptureSignature(ctx context.Context, visitID string, request *requests.CaptureSignature) (*models.CheckoutSession, error) {
	args := m.Called(ctx, visitID, request)
	if session := args.Get(0); session != nil {
		return session.(*models.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutUsecase) Commit(ctx context.Context, visitID, operator string) (*models.CheckoutTransaction, bool, error) {
	args := m.Called(ctx, visitID, operator)
	if transaction := args.Get(0); transaction != nil {
		return transaction.(*models.CheckoutTransaction), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func newCheckoutTestRouter(billingUsecase *MockBillingUsecase, checkoutUsecase *MockCheckoutUsecase) *chi.Mux {
	logger := zap.NewNop()
	billingController := billing.NewBillingController(logger, billingUsecase)
	checkoutController := checkout.NewCheckoutController(logger, checkoutUsecase)

	router := chi.NewRouter()
	router.Route("/visits/{visitID}/checkout", func(r chi.Router) {
		attachCheckoutRoutes(r, checkoutController, billingController)
	})
	return router
}

func emptyOpenSession() *models.CheckoutSession {
	return &models.CheckoutSession{
		VisitID:   "visit-001",
		PatientID: "patient-001",
		State:     models.CheckoutOpen,
		Revision:  1,
		LineItems: []models.LineItem{
			{Code: "EXAM-STD", Description: "Standard exam", UnitPriceCents: 4500, Units: 1},
		},
	}
}

func TestCheckoutRoutes(t *testing.T) {
	t.Run("Add Line Item Returns 201", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		mockBilling.On("AddLineItem", mock.Anything, "visit-001", mock.AnythingOfType("*requests.AddLineItem")).
			Return(emptyOpenSession(), nil)

		body := bytes.NewBufferString(`{"code":"EXAM-STD","description":"Standard exam","unit_price":"45.00","units":1}`)
		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/items", body)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "adding an item should return 201 Created")
		mockBilling.AssertExpectations(t)
	})

	t.Run("Add Line Item Rejects Bad JSON", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		body := bytes.NewBufferString(`{"code": `)
		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/items", body)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockBilling.AssertNotCalled(t, "AddLineItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Add Line Item Rejects Invalid Billing Code", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		body := bytes.NewBufferString(`{"code":"x","description":"Too short","unit_price":"45.00"}`)
		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/items", body)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockBilling.AssertNotCalled(t, "AddLineItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove Line Item", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		mockBilling.On("RemoveLineItem", mock.Anything, "visit-001", "EXAM-STD").
			Return(emptyOpenSession(), nil)

		req := httptest.NewRequest("DELETE", "/visits/visit-001/checkout/items/EXAM-STD", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockBilling.AssertExpectations(t)
	})

	t.Run("Get Session", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		mockCheckout.On("GetSession", mock.Anything, "visit-001").Return(emptyOpenSession(), nil)

		req := httptest.NewRequest("GET", "/visits/visit-001/checkout", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockCheckout.AssertExpectations(t)
	})

	t.Run("First Commit Returns 201", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		transaction := &models.CheckoutTransaction{ID: "txn-001", VisitID: "visit-001", TotalCents: 6500}
		mockCheckout.On("Commit", mock.Anything, "visit-001", mock.Anything).Return(transaction, false, nil)

		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/commit", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "a fresh commit should return 201 Created")
	})

	t.Run("Replayed Commit Returns 200", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		transaction := &models.CheckoutTransaction{ID: "txn-001", VisitID: "visit-001", TotalCents: 6500}
		mockCheckout.On("Commit", mock.Anything, "visit-001", mock.Anything).Return(transaction, true, nil)

		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/commit", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "an idempotent replay should return 200 OK")
	})

	t.Run("Compute Payment Rejects Unknown Method", func(t *testing.T) {
		mockBilling := new(MockBillingUsecase)
		mockCheckout := new(MockCheckoutUsecase)
		router := newCheckoutTestRouter(mockBilling, mockCheckout)

		body := bytes.NewBufferString(`{"method":"barter","amount_received":"65.00"}`)
		req := httptest.NewRequest("POST", "/visits/visit-001/checkout/payment", body)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCheckout.AssertNotCalled(t, "ComputePayment", mock.Anything, mock.Anything, mock.Anything)
	})
}
