package mission

import "fmt"

// PlanStateError is returned when a terminal plan is approved, rejected or
// reviewed again.
type PlanStateError struct {
	PlanID string
	Status PlanStatus
}

func (e *PlanStateError) Error() string {
	return fmt.Sprintf("mission plan %s is %s, not pending", e.PlanID, e.Status)
}

// NewPlanStateError creates a PlanStateError.
func NewPlanStateError(planID string, status PlanStatus) *PlanStateError {
	return &PlanStateError{PlanID: planID, Status: status}
}
