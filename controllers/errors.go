package controllers

import (
	"errors"
	"net/http"

	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondLifecycleError maps lifecycle engine errors onto the HTTP taxonomy:
// missing resources are 404, ownership failures 403, state-machine and input
// violations 400, anything else 500.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrInvoiceNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidAppliance),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrStartNotPending),
		errors.Is(err, services.ErrFinishNotActive),
		errors.Is(err, services.ErrNotCompleted),
		errors.Is(err, services.ErrAlreadyRated),
		errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrInvalidCost),
		errors.Is(err, services.ErrDuplicateInvoice),
		errors.Is(err, services.ErrInvoiceAlreadyPaid):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
