package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fixmate-backend/models"
	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	createFn      func(input services.CreateRequestInput) (*models.ServiceRequest, error)
	startFn       func(requestID, technicianID uint) error
	finishFn      func(input services.FinishJobInput) (*models.Invoice, error)
	cancelFn      func(requestID, customerID uint) error
	rateFn        func(requestID, customerID uint, rating int) error
	markPaidFn    func(invoiceID, technicianID uint) error
	customerFn    func(customerID uint) ([]services.RequestSummary, error)
	technicianFn  func(technicianID uint) ([]services.RequestSummary, error)
	techHistoryFn func(technicianID uint) ([]services.RequestSummary, error)
}

func (f fakeEngine) CreateRequest(input services.CreateRequestInput) (*models.ServiceRequest, error) {
	if f.createFn == nil {
		return &models.ServiceRequest{}, nil
	}
	return f.createFn(input)
}

func (f fakeEngine) StartJob(requestID, technicianID uint) error {
	if f.startFn == nil {
		return nil
	}
	return f.startFn(requestID, technicianID)
}

func (f fakeEngine) FinishJob(input services.FinishJobInput) (*models.Invoice, error) {
	if f.finishFn == nil {
		return &models.Invoice{}, nil
	}
	return f.finishFn(input)
}

func (f fakeEngine) CancelRequest(requestID, customerID uint) error {
	if f.cancelFn == nil {
		return nil
	}
	return f.cancelFn(requestID, customerID)
}

func (f fakeEngine) RateRequest(requestID, customerID uint, rating int) error {
	if f.rateFn == nil {
		return nil
	}
	return f.rateFn(requestID, customerID, rating)
}

func (f fakeEngine) MarkInvoicePaid(invoiceID, technicianID uint) error {
	if f.markPaidFn == nil {
		return nil
	}
	return f.markPaidFn(invoiceID, technicianID)
}

func (f fakeEngine) CustomerRequests(customerID uint) ([]services.RequestSummary, error) {
	if f.customerFn == nil {
		return nil, nil
	}
	return f.customerFn(customerID)
}

func (f fakeEngine) TechnicianRequests(technicianID uint) ([]services.RequestSummary, error) {
	if f.technicianFn == nil {
		return nil, nil
	}
	return f.technicianFn(technicianID)
}

func (f fakeEngine) TechnicianHistory(technicianID uint) ([]services.RequestSummary, error) {
	if f.techHistoryFn == nil {
		return nil, nil
	}
	return f.techHistoryFn(technicianID)
}

func newRequestRouter(engine LifecycleEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	sc := NewServiceRequestController(engine)
	group := r.Group("/service-requests")
	group.Use(utils.AuthMiddleware())
	{
		group.POST("", sc.Create)
		group.GET("/:customer_id", sc.List)
		group.DELETE("/:request_id", sc.Cancel)
		group.PUT("/:request_id/rating", sc.Rate)
	}
	return r
}

func customerToken(t *testing.T, id uint) string {
	t.Helper()
	token, err := utils.GenerateToken(id, utils.RoleCustomer)
	require.NoError(t, err)
	return "Bearer " + token
}

func technicianToken(t *testing.T, id uint) string {
	t.Helper()
	token, err := utils.GenerateToken(id, utils.RoleTechnician)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("creates pending request", func(t *testing.T) {
		engine := fakeEngine{
			createFn: func(input services.CreateRequestInput) (*models.ServiceRequest, error) {
				assert.Equal(t, uint(5), input.CustomerID)
				assert.Equal(t, uint(3), input.ApplianceID)
				assert.Equal(t, "leak", input.Description)
				return &models.ServiceRequest{ID: 100, Status: models.StatusPending}, nil
			},
		}
		r := newRequestRouter(engine)

		w := doJSON(r, http.MethodPost, "/service-requests", customerToken(t, 5), gin.H{
			"customer_id":  5,
			"appliance_id": 3,
			"description":  "leak",
			"request_date": "2024-01-01",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"request_id":100`)
	})

	t.Run("rejects mismatched customer id", func(t *testing.T) {
		r := newRequestRouter(fakeEngine{})

		w := doJSON(r, http.MethodPost, "/service-requests", customerToken(t, 6), gin.H{
			"customer_id":  5,
			"appliance_id": 3,
			"description":  "leak",
			"request_date": "2024-01-01",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		r := newRequestRouter(fakeEngine{})

		w := doJSON(r, http.MethodPost, "/service-requests", customerToken(t, 5), gin.H{
			"customer_id": 5,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects appliance owned by someone else", func(t *testing.T) {
		engine := fakeEngine{
			createFn: func(input services.CreateRequestInput) (*models.ServiceRequest, error) {
				return nil, services.ErrInvalidAppliance
			},
		}
		r := newRequestRouter(engine)

		w := doJSON(r, http.MethodPost, "/service-requests", customerToken(t, 5), gin.H{
			"customer_id":  5,
			"appliance_id": 7,
			"description":  "leak",
			"request_date": "2024-01-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		r := newRequestRouter(fakeEngine{})

		w := doJSON(r, http.MethodPost, "/service-requests", "", gin.H{})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListRequests(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("returns the customer's requests", func(t *testing.T) {
		engine := fakeEngine{
			customerFn: func(customerID uint) ([]services.RequestSummary, error) {
				assert.Equal(t, uint(5), customerID)
				return []services.RequestSummary{{RequestID: 100, Status: models.StatusPending}}, nil
			},
		}
		r := newRequestRouter(engine)

		w := doJSON(r, http.MethodGet, "/service-requests/5", customerToken(t, 5), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"request_id":100`)
	})

	t.Run("rejects another customer's listing", func(t *testing.T) {
		r := newRequestRouter(fakeEngine{})

		w := doJSON(r, http.MethodGet, "/service-requests/5", customerToken(t, 6), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCancelRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"cancels pending request", nil, http.StatusOK},
		{"rejects non-pending request", services.ErrNotPending, http.StatusBadRequest},
		{"rejects other customer", services.ErrAccessDenied, http.StatusForbidden},
		{"unknown request", services.ErrRequestNotFound, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakeEngine{
				cancelFn: func(requestID, customerID uint) error {
					assert.Equal(t, uint(100), requestID)
					assert.Equal(t, uint(5), customerID)
					return tt.err
				},
			}
			r := newRequestRouter(engine)

			w := doJSON(r, http.MethodDelete, "/service-requests/100", customerToken(t, 5), nil)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRateRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("records rating", func(t *testing.T) {
		engine := fakeEngine{
			rateFn: func(requestID, customerID uint, rating int) error {
				assert.Equal(t, uint(100), requestID)
				assert.Equal(t, 4, rating)
				return nil
			},
		}
		r := newRequestRouter(engine)

		w := doJSON(r, http.MethodPut, "/service-requests/100/rating", customerToken(t, 5), gin.H{"rating": 4})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"second rating is rejected", services.ErrAlreadyRated, http.StatusBadRequest},
		{"rating before completion is rejected", services.ErrNotCompleted, http.StatusBadRequest},
		{"out-of-range rating is rejected", services.ErrRatingOutOfRange, http.StatusBadRequest},
		{"unknown request", services.ErrRequestNotFound, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakeEngine{
				rateFn: func(requestID, customerID uint, rating int) error { return tt.err },
			}
			r := newRequestRouter(engine)

			w := doJSON(r, http.MethodPut, "/service-requests/100/rating", customerToken(t, 5), gin.H{"rating": 4})

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	t.Run("missing rating fails binding", func(t *testing.T) {
		r := newRequestRouter(fakeEngine{})

		w := doJSON(r, http.MethodPut, "/service-requests/100/rating", customerToken(t, 5), gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
