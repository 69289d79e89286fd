package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conferenceColumns = `id, name, acronym, year, location, website, created_at, updated_at`

type ConferenceRepo struct {
	db *pgxpool.Pool
}

func NewConferenceRepo(db *pgxpool.Pool) *ConferenceRepo {
	return &ConferenceRepo{db: db}
}

func (r *ConferenceRepo) List(ctx context.Context, query string, page, limit int) ([]domain.Conference, int64, error) {
	where := ""
	var args []any
	if query != "" {
		// 会议支持按全名或缩写搜索
		where = " WHERE name ILIKE $1 OR acronym ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM conferences"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM conferences%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		conferenceColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Conference, 0, limit)
	for rows.Next() {
		var v domain.Conference
		if err := rows.Scan(&v.ID, &v.Name, &v.Acronym, &v.Year, &v.Location, &v.Website, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		res = append(res, v)
	}
	return res, total, rows.Err()
}

func (r *ConferenceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conference, error) {
	var v domain.Conference
	err := r.db.QueryRow(ctx, "SELECT "+conferenceColumns+" FROM conferences WHERE id=$1", id).
		Scan(&v.ID, &v.Name, &v.Acronym, &v.Year, &v.Location, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ConferenceRepo) Insert(ctx context.Context, v *domain.Conference) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO conferences (id, name, acronym, year, location, website, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING created_at, updated_at
    `, v.ID, v.Name, v.Acronym, v.Year, v.Location, v.Website)
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *ConferenceRepo) Update(ctx context.Context, id uuid.UUID, p domain.ConferencePatch) (*domain.Conference, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Acronym != nil {
		add("acronym", *p.Acronym)
	}
	if p.Year != nil {
		add("year", *p.Year)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Website != nil {
		add("website", *p.Website)
	}

	var v domain.Conference
	err := r.db.QueryRow(ctx,
		"UPDATE conferences SET "+strings.Join(set, ", ")+" WHERE id=$1 RETURNING "+conferenceColumns,
		args...,
	).Scan(&v.ID, &v.Name, &v.Acronym, &v.Year, &v.Location, &v.Website, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ConferenceRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM conferences WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
