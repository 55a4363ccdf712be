package goods

import "fmt"

// ErrUnknownGood indicates a lookup for a good that was never registered
// with the catalog.
type ErrUnknownGood struct {
	Category Category
	Symbol   string
}

func (e *ErrUnknownGood) Error() string {
	return fmt.Sprintf("unknown good %s:%s (not in catalog)", e.Category, e.Symbol)
}

// NewUnknownGoodError creates an ErrUnknownGood.
func NewUnknownGoodError(category Category, symbol string) *ErrUnknownGood {
	return &ErrUnknownGood{Category: category, Symbol: symbol}
}
