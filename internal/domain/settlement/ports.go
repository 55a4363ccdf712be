package settlement

import "context"

// Repository persists settlement aggregates.
type Repository interface {
	Save(ctx context.Context, s *Settlement) error
	FindByName(ctx context.Context, name string) (*Settlement, error)
	FindAll(ctx context.Context) ([]*Settlement, error)
	Remove(ctx context.Context, name string) error
}

// LedgerRepository persists the inter-settlement credit ledger.
type LedgerRepository interface {
	Save(ctx context.Context, l *CreditLedger) error
	Load(ctx context.Context) (*CreditLedger, error)
}
