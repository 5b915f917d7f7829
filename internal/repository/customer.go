package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
)

func (r *repository) CreateCustomer(ctx context.Context, req model.RegisterCustomerRequest, passwordHash string) (model.Customer, error) {
	q, args, err := qb.Insert(customersTableName).
		Columns("first_name", "last_name", "email", "phone", "drivers_license", "address", "password_hash", "status").
		Values(req.FirstName, req.LastName, req.Email, req.Phone, req.DriversLicense, req.Address, passwordHash, model.CustomerActive).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Customer{}, errors.Wrap(errs.ErrConflict, "email already registered")
		}
		r.log.Error("CreateCustomer", zap.String("q", q), zap.Any("args", args))
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) GetCustomer(ctx context.Context, id int) (model.Customer, error) {
	q, args, err := qb.Select("*").
		From(customersTableName).
		Where(sq.Eq{"customer_id": id}).
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, errs.ErrNotFound
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) GetCustomerByEmail(ctx context.Context, email string) (model.Customer, error) {
	q, args, err := qb.Select("*").
		From(customersTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return model.Customer{}, err
	}
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, errs.ErrNotFound
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) ListCustomers(ctx context.Context, page, size int) (model.ListCustomers, error) {
	q := qb.Select("*").
		From(customersTableName).
		OrderBy("customer_id")

	if page != 0 && size != 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListCustomers{}, err
	}
	var customers []model.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return model.ListCustomers{}, err
	}
	return model.ListCustomers{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(customers),
		},
		Items: customers,
	}, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, id int, req model.UpdateCustomerRequest) (model.Customer, error) {
	q := qb.Update(customersTableName).Where(sq.Eq{"customer_id": id})
	set := false
	if req.FirstName != nil {
		q, set = q.Set("first_name", *req.FirstName), true
	}
	if req.LastName != nil {
		q, set = q.Set("last_name", *req.LastName), true
	}
	if req.Phone != nil {
		q, set = q.Set("phone", *req.Phone), true
	}
	if req.Address != nil {
		q, set = q.Set("address", *req.Address), true
	}
	if !set {
		return r.GetCustomer(ctx, id)
	}

	query, args, err := q.Suffix("returning *").ToSql()
	if err != nil {
		return model.Customer{}, err
	}
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, errs.ErrNotFound
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (r *repository) DeactivateCustomer(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var active int
	q := `select count(*) from reservations where customer_id = $1 and status in ('PENDING', 'CONFIRMED')`
	if err := tx.GetContext(ctx, &active, q, id); err != nil {
		return err
	}
	if active > 0 {
		return errors.Wrap(errs.ErrConflict, "customer has active reservations")
	}

	res, err := tx.ExecContext(ctx, `update customers set status = 'INACTIVE' where customer_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errs.ErrNotFound
	}
	return tx.Commit()
}
