package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `id, name, issn, publisher, website, created_at, updated_at`

type JournalRepo struct {
	db *pgxpool.Pool
}

func NewJournalRepo(db *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) List(ctx context.Context, query string, page, limit int) ([]domain.Journal, int64, error) {
	where := ""
	var args []any
	if query != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM journals"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM journals%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		journalColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Journal, 0, limit)
	for rows.Next() {
		var v domain.Journal
		if err := rows.Scan(&v.ID, &v.Name, &v.ISSN, &v.Publisher, &v.Website, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		res = append(res, v)
	}
	return res, total, rows.Err()
}

func (r *JournalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journal, error) {
	var v domain.Journal
	err := r.db.QueryRow(ctx, "SELECT "+journalColumns+" FROM journals WHERE id=$1", id).
		Scan(&v.ID, &v.Name, &v.ISSN, &v.Publisher, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *JournalRepo) Insert(ctx context.Context, v *domain.Journal) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO journals (id, name, issn, publisher, website, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING created_at, updated_at
    `, v.ID, v.Name, v.ISSN, v.Publisher, v.Website)
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *JournalRepo) Update(ctx context.Context, id uuid.UUID, p domain.JournalPatch) (*domain.Journal, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.ISSN != nil {
		add("issn", *p.ISSN)
	}
	if p.Publisher != nil {
		add("publisher", *p.Publisher)
	}
	if p.Website != nil {
		add("website", *p.Website)
	}

	var v domain.Journal
	err := r.db.QueryRow(ctx,
		"UPDATE journals SET "+strings.Join(set, ", ")+" WHERE id=$1 RETURNING "+journalColumns,
		args...,
	).Scan(&v.ID, &v.Name, &v.ISSN, &v.Publisher, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *JournalRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM journals WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
