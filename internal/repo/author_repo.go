package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const authorColumns = `id, name, email, homepage, institution_id, created_at, updated_at`

type AuthorRepo struct {
	db *pgxpool.Pool
}

func NewAuthorRepo(db *pgxpool.Pool) *AuthorRepo {
	return &AuthorRepo{db: db}
}

func (r *AuthorRepo) List(ctx context.Context, query string, page, limit int) ([]domain.Author, int64, error) {
	where := ""
	var args []any
	if query != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM authors"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM authors%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		authorColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Author, 0, limit)
	for rows.Next() {
		var v domain.Author
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Homepage, &v.InstitutionID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		res = append(res, v)
	}
	return res, total, rows.Err()
}

func (r *AuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	var v domain.Author
	err := r.db.QueryRow(ctx, "SELECT "+authorColumns+" FROM authors WHERE id=$1", id).
		Scan(&v.ID, &v.Name, &v.Email, &v.Homepage, &v.InstitutionID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *AuthorRepo) Insert(ctx context.Context, v *domain.Author) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO authors (id, name, email, homepage, institution_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING created_at, updated_at
    `, v.ID, v.Name, v.Email, v.Homepage, v.InstitutionID)
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *AuthorRepo) Update(ctx context.Context, id uuid.UUID, p domain.AuthorPatch) (*domain.Author, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Homepage != nil {
		add("homepage", *p.Homepage)
	}
	if p.InstitutionID != nil {
		add("institution_id", *p.InstitutionID)
	}

	var v domain.Author
	err := r.db.QueryRow(ctx,
		"UPDATE authors SET "+strings.Join(set, ", ")+" WHERE id=$1 RETURNING "+authorColumns,
		args...,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Homepage, &v.InstitutionID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *AuthorRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
