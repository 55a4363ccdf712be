package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/marscolony/simcore/internal/domain/settlement"
)

// CreditLedgerRepository implements the settlement.LedgerRepository interface
type CreditLedgerRepository struct {
	db *gorm.DB
}

// NewCreditLedgerRepository creates a new credit ledger repository
func NewCreditLedgerRepository(db *gorm.DB) *CreditLedgerRepository {
	return &CreditLedgerRepository{db: db}
}

// Save replaces the persisted ledger with the in-memory one
func (r *CreditLedgerRepository) Save(ctx context.Context, l *settlement.CreditLedger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CreditEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ledger: %w", err)
		}
		for _, entry := range l.Entries() {
			model := &CreditEntryModel{
				SettlementA: entry.A,
				SettlementB: entry.B,
				Balance:     entry.Balance,
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save ledger entry: %w", err)
			}
		}
		return nil
	})
}

// Load rebuilds the ledger from persisted entries
func (r *CreditLedgerRepository) Load(ctx context.Context) (*settlement.CreditLedger, error) {
	var models []CreditEntryModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	ledger := settlement.NewCreditLedger()
	for _, m := range models {
		ledger.Add(m.SettlementA, m.SettlementB, m.Balance)
	}
	return ledger, nil
}
