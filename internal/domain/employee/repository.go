package employee

import "context"

// EmployeeRepository is the read boundary onto the employee directory. The
// payroll engine consumes it; employee CRUD lives elsewhere.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// ListActiveWithComponents returns active employees with their active
	// allowance and deduction components loaded.
	ListActiveWithComponents(ctx context.Context, companyID string) ([]Employee, error)

	// GetByIDWithComponents returns one employee with components loaded.
	GetByIDWithComponents(ctx context.Context, id string, companyID string) (Employee, error)
}
