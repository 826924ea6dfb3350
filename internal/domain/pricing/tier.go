package pricing

// Tier represents a sale price tier.
// The wire values match the legacy API (Spanish enum values).
type Tier string

const (
	TierMinorista      Tier = "Minorista"
	TierMayorista      Tier = "Mayorista"
	TierSupermayorista Tier = "Supermayorista"
)

// IsValid checks if the tier is a known Tier
func (t Tier) IsValid() bool {
	switch t {
	case TierMinorista, TierMayorista, TierSupermayorista:
		return true
	}
	return false
}

// String returns the string representation of Tier
func (t Tier) String() string {
	return string(t)
}

// AdjustScope identifies which tier prices a bulk adjustment targets
type AdjustScope string

const (
	ScopeMinorista      AdjustScope = "minorista"
	ScopeMayorista      AdjustScope = "mayorista"
	ScopeSupermayorista AdjustScope = "supermayorista"
	ScopeTodos          AdjustScope = "todos"
)

// IsValid checks if the scope is a known AdjustScope
func (s AdjustScope) IsValid() bool {
	switch s {
	case ScopeMinorista, ScopeMayorista, ScopeSupermayorista, ScopeTodos:
		return true
	}
	return false
}

// Includes reports whether the scope covers the given tier
func (s AdjustScope) Includes(t Tier) bool {
	switch s {
	case ScopeTodos:
		return true
	case ScopeMinorista:
		return t == TierMinorista
	case ScopeMayorista:
		return t == TierMayorista
	case ScopeSupermayorista:
		return t == TierSupermayorista
	}
	return false
}
