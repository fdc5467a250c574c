package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
)

const productCols = "id, name, description, price, created_at, updated_at"

// uniqueViolation is the Postgres error code for a broken UNIQUE constraint.
// The products.name unique index backs up the application-level check.
const uniqueViolation = "23505"

func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	q := r.qb().Select("id", "name", "description", "price", "created_at", "updated_at").
		From(r.table())

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FindAll", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("FindAll query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Printf("FindAll scan error after %s: %v", time.Since(start), err)
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("FindAll rows error after %s: %v", time.Since(start), err)
		return nil, err
	}
	r.logger.Printf("FindAll ok in %s count=%d", time.Since(start), len(out))
	return out, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	q := r.qb().Select("id", "name", "description", "price", "created_at", "updated_at").
		From(r.table()).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FindByID", sqlStr, args)

	start := time.Now()
	p, err := scanProduct(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("FindByID scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, translate(err)
	}
	r.logger.Printf("FindByID ok in %s id=%s", time.Since(start), p.ID)
	return p, nil
}

func (r *PGRepo) FindByName(ctx context.Context, name string, exclude *domain.ProductID) (domain.Product, error) {
	q := r.qb().Select("id", "name", "description", "price", "created_at", "updated_at").
		From(r.table()).
		Where(sq.Eq{"name": name})
	if exclude != nil {
		q = q.Where(sq.NotEq{"id": *exclude})
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FindByName", sqlStr, args)

	start := time.Now()
	p, err := scanProduct(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("FindByName scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, translate(err)
	}
	r.logger.Printf("FindByName ok in %s id=%s name=%q", time.Since(start), p.ID, p.Name)
	return p, nil
}

func (r *PGRepo) Insert(ctx context.Context, in domain.CreateProductInput) (domain.Product, error) {
	q := r.qb().Insert(r.table()).
		Columns("name", "description", "price").
		Values(in.Name, in.Description, in.Price).
		Suffix("RETURNING " + productCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("Insert", sqlStr, args)

	start := time.Now()
	p, err := scanProduct(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("Insert scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, translate(err)
	}
	r.logger.Printf("Insert ok in %s id=%s name=%q", time.Since(start), p.ID, p.Name)
	return p, nil
}

func (r *PGRepo) UpdateByID(ctx context.Context, id domain.ProductID, in domain.UpdateProductInput) (domain.Product, error) {
	// updated_at always moves, so an empty patch still returns the current row.
	q := r.qb().Update(r.table()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + productCols)
	if in.Name != nil {
		q = q.Set("name", *in.Name)
	}
	if in.Description != nil {
		q = q.Set("description", *in.Description)
	}
	if in.Price != nil {
		q = q.Set("price", *in.Price)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateByID", sqlStr, args)

	start := time.Now()
	p, err := scanProduct(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("UpdateByID scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, translate(err)
	}
	r.logger.Printf("UpdateByID ok in %s id=%s", time.Since(start), p.ID)
	return p, nil
}

// DeleteByID removes the row and returns its last state. Absence maps
// to ErrNotFound via the empty result of RETURNING.
func (r *PGRepo) DeleteByID(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	q := r.qb().Delete(r.table()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + productCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteByID", sqlStr, args)

	start := time.Now()
	p, err := scanProduct(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("DeleteByID scan error after %s: %v", time.Since(start), err)
		return domain.Product{}, translate(err)
	}
	r.logger.Printf("DeleteByID ok in %s id=%s", time.Since(start), id)
	return p, nil
}
