package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/partner"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string       `json:"nombre" binding:"required,min=1,max=200"`
	TaxID   string       `json:"cuit" binding:"max=20"`
	Tier    pricing.Tier `json:"tipo_venta" binding:"required,tier"`
	Phone   string       `json:"telefono" binding:"max=50"`
	Email   string       `json:"email" binding:"omitempty,email,max=200"`
	Address string       `json:"direccion" binding:"max=300"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name    *string       `json:"nombre" binding:"omitempty,min=1,max=200"`
	TaxID   *string       `json:"cuit" binding:"omitempty,max=20"`
	Tier    *pricing.Tier `json:"tipo_venta" binding:"omitempty,tier"`
	Phone   *string       `json:"telefono" binding:"omitempty,max=50"`
	Email   *string       `json:"email" binding:"omitempty,email,max=200"`
	Address *string       `json:"direccion" binding:"omitempty,max=300"`
	Active  *bool         `json:"activo"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string        `form:"search"`
	Tier     *pricing.Tier `form:"tipo_venta"`
	Active   *bool         `form:"activo"`
	Page     int           `form:"page" binding:"omitempty,min=1"`
	PageSize int           `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"nombre"`
	TaxID     string       `json:"cuit"`
	Tier      pricing.Tier `json:"tipo_venta"`
	Phone     string       `json:"telefono"`
	Email     string       `json:"email"`
	Address   string       `json:"direccion"`
	Active    bool         `json:"activo"`
	CreatedAt time.Time    `json:"fecha_alta"`
}

// ToCustomerResponse converts a customer to its API representation
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		TaxID:     customer.TaxID,
		Tier:      customer.Tier,
		Phone:     customer.Phone,
		Email:     customer.Email,
		Address:   customer.Address,
		Active:    customer.Active,
		CreatedAt: customer.CreatedAt,
	}
}

// CustomerService handles customer master data
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Tier)
	if err != nil {
		return nil, err
	}
	customer.TaxID = req.TaxID
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("tier", string(customer.Tier)))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}
	if req.Tier != nil {
		if err := customer.ChangeTier(*req.Tier); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Active != nil {
		if *req.Active {
			customer.Activate()
		} else {
			customer.Deactivate()
		}
	}
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a single customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Tier != nil {
		domainFilter.Filters["tier"] = string(*filter.Tier)
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}

	paginated := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
