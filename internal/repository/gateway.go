package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
)

func (r *repository) ListGateways(ctx context.Context) ([]model.PaymentGateway, error) {
	q, args, err := qb.Select("gateway_id", "name", "status").
		From(gatewaysTableName).
		OrderBy("gateway_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var gateways []model.PaymentGateway
	if err := r.db.SelectContext(ctx, &gateways, q, args...); err != nil {
		return nil, err
	}
	return gateways, nil
}

func (r *repository) ActiveGateway(ctx context.Context) (model.PaymentGateway, error) {
	q, args, err := qb.Select("gateway_id", "name", "status").
		From(gatewaysTableName).
		Where(sq.Eq{"status": model.GatewayActive}).
		OrderBy("gateway_id").
		Limit(1).
		ToSql()
	if err != nil {
		return model.PaymentGateway{}, err
	}
	var gateway model.PaymentGateway
	if err := r.db.GetContext(ctx, &gateway, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PaymentGateway{}, errs.ErrGatewayUnavailable
		}
		return model.PaymentGateway{}, err
	}
	return gateway, nil
}

// SetGatewayStatus reports whether the stored status actually changed, so the
// monitor only logs real transitions.
func (r *repository) SetGatewayStatus(ctx context.Context, gatewayID string, status model.GatewayStatus) (bool, error) {
	q := `update payment_gateways set status = $2 where gateway_id = $1 and status <> $2`
	res, err := r.db.ExecContext(ctx, q, gatewayID, status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) SaveTransaction(ctx context.Context, txn model.GatewayTransaction) error {
	q, args, err := qb.Insert(transactionsTableName).
		Columns("transaction_id", "amount", "gateway_id", "status").
		Values(txn.ID, txn.Amount, txn.GatewayID, txn.Status).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *repository) GetTransaction(ctx context.Context, transactionID string) (model.GatewayTransaction, error) {
	q, args, err := qb.Select("*").
		From(transactionsTableName).
		Where(sq.Eq{"transaction_id": transactionID}).
		ToSql()
	if err != nil {
		return model.GatewayTransaction{}, err
	}
	var txn model.GatewayTransaction
	if err := r.db.GetContext(ctx, &txn, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.GatewayTransaction{}, errs.ErrNotFound
		}
		return model.GatewayTransaction{}, err
	}
	return txn, nil
}

func (r *repository) SetTransactionStatus(ctx context.Context, transactionID string, status model.TransactionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`update transactions set status = $2 where transaction_id = $1`, transactionID, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) RecentTransactions(ctx context.Context, limit int) ([]model.GatewayTransaction, error) {
	q, args, err := qb.Select("*").
		From(transactionsTableName).
		OrderBy("created_at desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var txns []model.GatewayTransaction
	if err := r.db.SelectContext(ctx, &txns, q, args...); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repository) InsertGatewayLog(ctx context.Context, event kafka.GatewayEvent) error {
	q, args, err := qb.Insert(gatewayLogsTableName).
		Columns("gateway_id", "event_type", "event_data", "created_at").
		Values(event.GatewayID, event.EventType, event.EventData, event.Timestamp).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *repository) GatewayLogs(ctx context.Context, gatewayID string, limit int) ([]model.GatewayLog, error) {
	q, args, err := qb.Select("*").
		From(gatewayLogsTableName).
		Where(sq.Eq{"gateway_id": gatewayID}).
		OrderBy("created_at desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var logs []model.GatewayLog
	if err := r.db.SelectContext(ctx, &logs, q, args...); err != nil {
		return nil, err
	}
	return logs, nil
}
