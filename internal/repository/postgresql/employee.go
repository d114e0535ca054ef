package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, employee_number, first_name, last_name, kra_pin,
	contract_type, employment_status, basic_salary, hire_date, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeNumber, &e.FirstName, &e.LastName, &e.KRAPin,
		&e.ContractType, &e.EmploymentStatus, &e.BasicSalary, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) ListActiveWithComponents(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active'
		ORDER BY employee_number
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	if err := r.loadComponents(ctx, employees); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *employeeRepository) GetByIDWithComponents(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	employees := []employee.Employee{e}
	if err := r.loadComponents(ctx, employees); err != nil {
		return employee.Employee{}, err
	}

	return employees[0], nil
}

// loadComponents attaches active pay components to the given employees in one
// round trip.
func (r *employeeRepository) loadComponents(ctx context.Context, employees []employee.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	index := make(map[string]*employee.Employee, len(employees))
	ids := make([]string, 0, len(employees))
	for i := range employees {
		index[employees[i].ID] = &employees[i]
		ids = append(ids, employees[i].ID)
	}

	query := `
		SELECT id, employee_id, name, type, amount, is_active
		FROM employee_pay_components
		WHERE employee_id = ANY($1) AND is_active = true
		ORDER BY employee_id, name
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to list pay components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c employee.PayComponent
		var componentType string
		err := rows.Scan(&c.ID, &c.EmployeeID, &c.Name, &componentType, &c.Amount, &c.IsActive)
		if err != nil {
			return fmt.Errorf("failed to scan pay component: %w", err)
		}

		e, ok := index[c.EmployeeID]
		if !ok {
			continue
		}
		switch componentType {
		case "allowance":
			e.Allowances = append(e.Allowances, c)
		case "deduction":
			e.Deductions = append(e.Deductions, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate pay components: %w", err)
	}

	return nil
}
