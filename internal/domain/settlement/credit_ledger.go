package settlement

import "strings"

// CreditLedger tracks the running value owed between settlement pairs from
// past trades. Credit(a, b) is positive when a is owed value by b, and the
// ledger is antisymmetric: Credit(b, a) == -Credit(a, b).
type CreditLedger struct {
	balances map[string]float64
}

// NewCreditLedger creates an empty ledger.
func NewCreditLedger() *CreditLedger {
	return &CreditLedger{balances: map[string]float64{}}
}

func pairKey(a, b string) (string, bool) {
	if a <= b {
		return a + "|" + b, false
	}
	return b + "|" + a, true
}

// Credit returns the signed balance between two settlements.
func (l *CreditLedger) Credit(a, b string) float64 {
	key, flipped := pairKey(a, b)
	v := l.balances[key]
	if flipped {
		return -v
	}
	return v
}

// Add adjusts the balance between two settlements by delta, from a's
// perspective. A positive delta increases what a is owed.
func (l *CreditLedger) Add(a, b string, delta float64) {
	key, flipped := pairKey(a, b)
	if flipped {
		delta = -delta
	}
	l.balances[key] += delta
}

// CreditEntry is one settlement pair's balance, from A's perspective.
type CreditEntry struct {
	A, B    string
	Balance float64
}

// Entries lists every pair balance for persistence.
func (l *CreditLedger) Entries() []CreditEntry {
	out := make([]CreditEntry, 0, len(l.balances))
	for key, balance := range l.balances {
		a, b, ok := strings.Cut(key, "|")
		if !ok {
			continue
		}
		out = append(out, CreditEntry{A: a, B: b, Balance: balance})
	}
	return out
}
