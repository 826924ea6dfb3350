package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// Customer represents a buyer. The tier classification decides which
// ledger price the customer pays; it is an attribute of the customer,
// not of the individual sale.
type Customer struct {
	shared.BaseEntity
	Name    string       `gorm:"type:varchar(200);not null;index"`
	TaxID   string       `gorm:"type:varchar(20);index"`
	Tier    pricing.Tier `gorm:"type:varchar(20);not null;default:'Minorista'"`
	Phone   string       `gorm:"type:varchar(50)"`
	Email   string       `gorm:"type:varchar(200)"`
	Address string       `gorm:"type:varchar(300)"`
	Active  bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(name string, tier pricing.Tier) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !tier.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_TIER", "Tipo de venta inválido: %q", string(tier))
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Tier:       tier,
		Active:     true,
	}, nil
}

// ChangeTier reclassifies the customer. Past sales keep the tier they
// were made under; only future sales resolve against the new one.
func (c *Customer) ChangeTier(tier pricing.Tier) error {
	if !tier.IsValid() {
		return shared.NewDomainErrorf("INVALID_TIER", "Tipo de venta inválido: %q", string(tier))
	}
	c.Tier = tier
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the customer as inactive; inactive customers cannot
// be the counterparty of new sales.
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// Activate marks the customer as active again
func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

// CustomerRepository is the persistence port for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
}
