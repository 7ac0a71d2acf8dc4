package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.mode,
	COALESCE(p.payable_days, 0), COALESCE(p.total_days, 0),
	p.base_salary, p.allowances, p.deductions, p.bonus, p.total_salary,
	p.status, p.payment_date, p.created_at, p.updated_at,
	e.full_name, e.employee_code`

const payrollFrom = `
	FROM payrolls p
	LEFT JOIN employees e ON e.id = p.employee_id`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.Mode,
		&rec.PayableDays, &rec.TotalDays,
		&rec.BaseSalary, &rec.Allowances, &rec.Deductions, &rec.Bonus, &rec.TotalSalary,
		&rec.Status, &rec.PaymentDate, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	return rec, err
}

// Upsert implements payroll.PayrollRepository.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	// A paid row fails the DO UPDATE guard, so nothing is returned for it.
	query := `
		INSERT INTO payrolls (
			employee_id, month, year, mode, payable_days, total_days,
			base_salary, allowances, deductions, bonus, total_salary, status, payment_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT ON CONSTRAINT payrolls_employee_period_key DO UPDATE SET
			mode = EXCLUDED.mode,
			payable_days = EXCLUDED.payable_days,
			total_days = EXCLUDED.total_days,
			base_salary = EXCLUDED.base_salary,
			allowances = EXCLUDED.allowances,
			deductions = EXCLUDED.deductions,
			bonus = EXCLUDED.bonus,
			total_salary = EXCLUDED.total_salary,
			status = EXCLUDED.status,
			payment_date = EXCLUDED.payment_date,
			updated_at = now()
		WHERE payrolls.status <> 'paid'
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Month,
		record.Year,
		record.Mode,
		record.PayableDays,
		record.TotalDays,
		record.BaseSalary,
		record.Allowances,
		record.Deductions,
		record.Bonus,
		record.TotalSalary,
		record.Status,
		record.PaymentDate,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + ` WHERE p.id = $1`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by id: %w", err)
	}
	return rec, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}
	return rec, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM payrolls p WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)

	selectQuery := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY p.year DESC, p.month DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, payrollFrom, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating payroll records: %w", err)
	}

	return records, total, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, id string, apply func(*payroll.PayrollRecord) error) (payroll.PayrollRecord, error) {
	var updated payroll.PayrollRecord

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `SELECT ` + payrollColumns + payrollFrom + ` WHERE p.id = $1 FOR UPDATE OF p`
		rec, err := scanPayrollRecord(q.QueryRow(txCtx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrPayrollRecordNotFound
			}
			return fmt.Errorf("failed to lock payroll record: %w", err)
		}

		if err := apply(&rec); err != nil {
			return err
		}

		updateQuery := `
			UPDATE payrolls
			SET base_salary = $2, allowances = $3, deductions = $4, bonus = $5,
				total_salary = $6, status = $7, payment_date = $8, updated_at = now()
			WHERE id = $1
			RETURNING updated_at
		`
		if err := q.QueryRow(txCtx, updateQuery,
			rec.ID,
			rec.BaseSalary,
			rec.Allowances,
			rec.Deductions,
			rec.Bonus,
			rec.TotalSalary,
			rec.Status,
			rec.PaymentDate,
		).Scan(&rec.UpdatedAt); err != nil {
			return fmt.Errorf("failed to update payroll record: %w", err)
		}

		updated = rec
		return nil
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return updated, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
