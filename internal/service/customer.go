package service

import (
	"context"
	"strings"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) ListCustomers(ctx context.Context, cpfPrefix string) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, cpfPrefix)
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	birthday, err := domain.ParseDate(in.Birthday)
	if err != nil {
		return nil, domain.InvalidInputf("birthday: %v", err)
	}

	c := &domain.Customer{
		Name:     in.Name,
		Phone:    in.Phone,
		CPF:      in.CPF,
		Birthday: birthday,
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
