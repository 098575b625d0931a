package services

import "fixmate-backend/models"

// Precondition checks for each lifecycle transition. All of them follow the
// same order: authorize the caller, then validate the current state, then the
// input. The caller is responsible for fetching the rows first.

// An unassigned pending request is claimed by the technician who starts it;
// once assigned, only that technician may act on it.
func checkStart(req *models.ServiceRequest, technicianID uint) error {
	if req.TechnicianID != nil && *req.TechnicianID != technicianID {
		return ErrAccessDenied
	}
	if !ValidTransition(EventStart, req.Status) {
		return ErrStartNotPending
	}
	return nil
}

func checkFinish(req *models.ServiceRequest, technicianID uint, totalCost float64) error {
	if req.TechnicianID == nil || *req.TechnicianID != technicianID {
		return ErrAccessDenied
	}
	if !ValidTransition(EventFinish, req.Status) {
		return ErrFinishNotActive
	}
	if totalCost <= 0 {
		return ErrInvalidCost
	}
	return nil
}

func checkCancel(req *models.ServiceRequest, customerID uint) error {
	if req.CustomerID != customerID {
		return ErrAccessDenied
	}
	if !ValidTransition(EventCancel, req.Status) {
		return ErrNotPending
	}
	return nil
}

func checkRate(req *models.ServiceRequest, customerID uint, rating int) error {
	if req.CustomerID != customerID {
		return ErrAccessDenied
	}
	if !ValidTransition(EventRate, req.Status) {
		return ErrNotCompleted
	}
	if req.Rating != nil {
		return ErrAlreadyRated
	}
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}

func checkMarkPaid(inv *models.Invoice, req *models.ServiceRequest, technicianID uint) error {
	if req.TechnicianID == nil || *req.TechnicianID != technicianID {
		return ErrAccessDenied
	}
	if inv.PaymentStatus == models.PaymentPaid {
		return ErrInvoiceAlreadyPaid
	}
	return nil
}
