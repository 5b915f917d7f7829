package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/pkg/auth"
)

func (s *Service) RegisterCustomer(ctx context.Context, req model.RegisterCustomerRequest) (model.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Customer{}, err
	}
	return s.repo.CreateCustomer(ctx, req, string(hash))
}

func (s *Service) GetCustomer(ctx context.Context, id int) (model.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context, page, size int) (model.ListCustomers, error) {
	return s.repo.ListCustomers(ctx, page, size)
}

func (s *Service) UpdateCustomer(ctx context.Context, id int, req model.UpdateCustomerRequest) (model.Customer, error) {
	return s.repo.UpdateCustomer(ctx, id, req)
}

func (s *Service) DeregisterCustomer(ctx context.Context, id int) error {
	return s.repo.DeactivateCustomer(ctx, id)
}

// Login authenticates either the built-in admin from config or a registered
// customer by email and password.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Email == s.creds.AdminEmail {
		if req.Password != s.creds.AdminPassword {
			return model.LoginResponse{}, errors.Wrap(errs.ErrValidation, "invalid credentials")
		}
		token, err := auth.NewToken(req.Email, auth.RoleAdmin, s.creds.TokenTTL)
		if err != nil {
			return model.LoginResponse{}, err
		}
		return model.LoginResponse{Token: token, Role: auth.RoleAdmin}, nil
	}

	customer, err := s.repo.GetCustomerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errors.Wrap(errs.ErrValidation, "invalid credentials")
		}
		return model.LoginResponse{}, err
	}
	if customer.Status != model.CustomerActive {
		return model.LoginResponse{}, errors.Wrap(errs.ErrValidation, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, errors.Wrap(errs.ErrValidation, "invalid credentials")
	}

	token, err := auth.NewToken(customer.Email, auth.RoleUser, s.creds.TokenTTL)
	if err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{Token: token, Role: auth.RoleUser}, nil
}
