package postgres

import (
	"context"
	"strings"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, phone, cpf, birthday) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.CPF, c.Birthday).Scan(&c.ID)
	return mapError("insert customer", err)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, phone, cpf, birthday FROM customers WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Birthday); err != nil {
		return nil, mapError("get customer", err)
	}
	return c, nil
}

func (r *customerRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, phone, cpf, birthday FROM customers WHERE cpf = $1`
	if err := r.db.QueryRowContext(ctx, query, cpf).Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Birthday); err != nil {
		return nil, mapError("get customer by cpf", err)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context, cpfPrefix string) ([]domain.Customer, error) {
	query := `SELECT id, name, phone, cpf, birthday FROM customers`
	var args []any
	if cpfPrefix != "" {
		query += ` WHERE cpf LIKE $1 || '%'`
		args = append(args, escapeLike(cpfPrefix))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Birthday); err != nil {
			return nil, mapError("scan customer", err)
		}
		customers = append(customers, c)
	}
	return customers, mapError("list customers", rows.Err())
}

// escapeLike quotes the LIKE wildcards so user input only matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
