package controllers

import (
	"net/http"
	"testing"

	"fixmate-backend/models"
	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTechnicianRouter(engine LifecycleEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tc := NewTechnicianController(engine, nil, nil)
	group := r.Group("/technician")
	group.Use(utils.TechnicianAuthMiddleware())
	{
		group.GET("/:technician_id/requests", tc.Requests)
		group.GET("/:technician_id/history", tc.History)
		group.PUT("/requests/:request_id/start", tc.Start)
		group.POST("/requests/:request_id/finish", tc.Finish)
		group.PUT("/invoices/:invoice_id/mark-paid", tc.MarkPaid)
	}
	return r
}

func TestStartJob(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("starts pending request for the token's technician", func(t *testing.T) {
		engine := fakeEngine{
			startFn: func(requestID, technicianID uint) error {
				assert.Equal(t, uint(100), requestID)
				assert.Equal(t, uint(9), technicianID)
				return nil
			},
		}
		r := newTechnicianRouter(engine)

		w := doJSON(r, http.MethodPut, "/technician/requests/100/start", technicianToken(t, 9), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"non-pending request", services.ErrStartNotPending, http.StatusBadRequest},
		{"assigned to another technician", services.ErrAccessDenied, http.StatusForbidden},
		{"unknown request", services.ErrRequestNotFound, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakeEngine{
				startFn: func(requestID, technicianID uint) error { return tt.err },
			}
			r := newTechnicianRouter(engine)

			w := doJSON(r, http.MethodPut, "/technician/requests/100/start", technicianToken(t, 9), nil)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	t.Run("customer token is rejected", func(t *testing.T) {
		r := newTechnicianRouter(fakeEngine{})

		w := doJSON(r, http.MethodPut, "/technician/requests/100/start", customerToken(t, 5), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFinishJob(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("completes the job and returns the invoice id", func(t *testing.T) {
		engine := fakeEngine{
			finishFn: func(input services.FinishJobInput) (*models.Invoice, error) {
				assert.Equal(t, uint(100), input.RequestID)
				assert.Equal(t, uint(9), input.TechnicianID)
				assert.Equal(t, 500.0, input.TotalCost)
				return &models.Invoice{ID: 31, PaymentStatus: models.PaymentUnpaid, TotalCost: 500}, nil
			},
		}
		r := newTechnicianRouter(engine)

		w := doJSON(r, http.MethodPost, "/technician/requests/100/finish", technicianToken(t, 9), gin.H{
			"total_cost": 500,
			"issue_date": "2024-01-05",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"invoice_id":31`)
	})

	t.Run("missing cost fails binding", func(t *testing.T) {
		r := newTechnicianRouter(fakeEngine{})

		w := doJSON(r, http.MethodPost, "/technician/requests/100/finish", technicianToken(t, 9), gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"duplicate invoice", services.ErrDuplicateInvoice, http.StatusBadRequest},
		{"request not in progress", services.ErrFinishNotActive, http.StatusBadRequest},
		{"negative cost", services.ErrInvalidCost, http.StatusBadRequest},
		{"another technician's request", services.ErrAccessDenied, http.StatusForbidden},
		{"unknown request", services.ErrRequestNotFound, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakeEngine{
				finishFn: func(input services.FinishJobInput) (*models.Invoice, error) { return nil, tt.err },
			}
			r := newTechnicianRouter(engine)

			w := doJSON(r, http.MethodPost, "/technician/requests/100/finish", technicianToken(t, 9), gin.H{
				"total_cost": 500,
			})

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestMarkPaid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("marks invoice paid", func(t *testing.T) {
		engine := fakeEngine{
			markPaidFn: func(invoiceID, technicianID uint) error {
				assert.Equal(t, uint(31), invoiceID)
				assert.Equal(t, uint(9), technicianID)
				return nil
			},
		}
		r := newTechnicianRouter(engine)

		w := doJSON(r, http.MethodPut, "/technician/invoices/31/mark-paid", technicianToken(t, 9), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"repeat call on paid invoice", services.ErrInvoiceAlreadyPaid, http.StatusBadRequest},
		{"another technician's invoice", services.ErrAccessDenied, http.StatusForbidden},
		{"unknown invoice", services.ErrInvoiceNotFound, http.StatusNotFound},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			engine := fakeEngine{
				markPaidFn: func(invoiceID, technicianID uint) error { return tt.err },
			}
			r := newTechnicianRouter(engine)

			w := doJSON(r, http.MethodPut, "/technician/invoices/31/mark-paid", technicianToken(t, 9), nil)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestTechnicianListings(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("active queue", func(t *testing.T) {
		engine := fakeEngine{
			technicianFn: func(technicianID uint) ([]services.RequestSummary, error) {
				assert.Equal(t, uint(9), technicianID)
				return []services.RequestSummary{
					{RequestID: 100, Status: models.StatusInProgress, CustomerPhones: []string{"9876543210"}},
				}, nil
			},
		}
		r := newTechnicianRouter(engine)

		w := doJSON(r, http.MethodGet, "/technician/9/requests", technicianToken(t, 9), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"customer_phones":["9876543210"]`)
	})

	t.Run("history", func(t *testing.T) {
		engine := fakeEngine{
			techHistoryFn: func(technicianID uint) ([]services.RequestSummary, error) {
				return []services.RequestSummary{{RequestID: 90, Status: models.StatusCompleted}}, nil
			},
		}
		r := newTechnicianRouter(engine)

		w := doJSON(r, http.MethodGet, "/technician/9/history", technicianToken(t, 9), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"request_id":90`)
	})

	t.Run("another technician's queue is rejected", func(t *testing.T) {
		r := newTechnicianRouter(fakeEngine{})

		w := doJSON(r, http.MethodGet, "/technician/9/requests", technicianToken(t, 4), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
