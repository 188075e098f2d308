package memory

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
)

type payrollConfigRepository struct {
	store *Store
}

func NewPayrollConfigRepository(store *Store) payroll.PayrollConfigRepository {
	return &payrollConfigRepository{store: store}
}

func (r *payrollConfigRepository) Upsert(ctx context.Context, config payroll.PayrollConfig) (payroll.PayrollConfig, error) {
	defer r.store.lock(ctx)()

	now := r.store.now()
	if existing, ok := r.store.data.payroll[config.EmployeeID]; ok {
		config.ID = existing.ID
		config.CreatedAt = existing.CreatedAt
	} else {
		config.ID = uuid.NewString()
		config.CreatedAt = now
	}
	config.UpdatedAt = now
	r.store.data.payroll[config.EmployeeID] = config
	return config, nil
}

func (r *payrollConfigRepository) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.PayrollConfig, error) {
	defer r.store.lock(ctx)()

	config, ok := r.store.data.payroll[employeeID]
	if !ok {
		return payroll.PayrollConfig{}, payroll.ErrPayrollConfigNotFound
	}
	return config, nil
}
