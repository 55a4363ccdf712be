package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Settlement-related errors

type SettlementError struct {
	*DomainError
	Settlement string
}

func NewSettlementError(settlement, message string) *SettlementError {
	return &SettlementError{
		DomainError: &DomainError{Message: fmt.Sprintf("settlement %s: %s", settlement, message)},
		Settlement:  settlement,
	}
}

type InsufficientResourceError struct {
	*SettlementError
	Resource  string
	Required  float64
	Available float64
}

func NewInsufficientResourceError(settlement, resource string, required, available float64) *InsufficientResourceError {
	return &InsufficientResourceError{
		SettlementError: NewSettlementError(settlement,
			fmt.Sprintf("insufficient %s: need %.1f, have %.1f", resource, required, available)),
		Resource:  resource,
		Required:  required,
		Available: available,
	}
}
