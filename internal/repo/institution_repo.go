package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const institutionColumns = `id, name, country, website, created_at, updated_at`

type InstitutionRepo struct {
	db *pgxpool.Pool
}

func NewInstitutionRepo(db *pgxpool.Pool) *InstitutionRepo {
	return &InstitutionRepo{db: db}
}

// List 按名称模糊搜索并分页，query 为空时返回全部
func (r *InstitutionRepo) List(ctx context.Context, query string, page, limit int) ([]domain.Institution, int64, error) {
	where := ""
	var args []any
	if query != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM institutions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM institutions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		institutionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Institution, 0, limit)
	for rows.Next() {
		var v domain.Institution
		if err := rows.Scan(&v.ID, &v.Name, &v.Country, &v.Website, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		res = append(res, v)
	}
	return res, total, rows.Err()
}

func (r *InstitutionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Institution, error) {
	var v domain.Institution
	err := r.db.QueryRow(ctx, "SELECT "+institutionColumns+" FROM institutions WHERE id=$1", id).
		Scan(&v.ID, &v.Name, &v.Country, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *InstitutionRepo) Insert(ctx context.Context, v *domain.Institution) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO institutions (id, name, country, website, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING created_at, updated_at
    `, v.ID, v.Name, v.Country, v.Website)
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *InstitutionRepo) Update(ctx context.Context, id uuid.UUID, p domain.InstitutionPatch) (*domain.Institution, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Country != nil {
		add("country", *p.Country)
	}
	if p.Website != nil {
		add("website", *p.Website)
	}

	var v domain.Institution
	err := r.db.QueryRow(ctx,
		"UPDATE institutions SET "+strings.Join(set, ", ")+" WHERE id=$1 RETURNING "+institutionColumns,
		args...,
	).Scan(&v.ID, &v.Name, &v.Country, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *InstitutionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM institutions WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
