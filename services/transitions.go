package services

import "fixmate-backend/models"

// Lifecycle events and the request statuses they are allowed from. Every
// status change in the system goes through this table.
const (
	EventStart  = "start"
	EventFinish = "finish"
	EventCancel = "cancel"
	EventRate   = "rate"
)

var transitionMap = map[string][]string{
	EventStart:  {models.StatusPending},
	EventFinish: {models.StatusInProgress},
	EventCancel: {models.StatusPending},
	EventRate:   {models.StatusCompleted},
}

func ValidTransition(event, fromStatus string) bool {
	allowed, ok := transitionMap[event]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
