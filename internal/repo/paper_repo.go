package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paperColumns = `id, title, abstract, doi, slug, pdf_url, published_at, journal_id, conference_id, author_ids, created_at, updated_at`

type PaperRepo struct {
	db *pgxpool.Pool
}

func NewPaperRepo(db *pgxpool.Pool) *PaperRepo {
	return &PaperRepo{db: db}
}

// author_ids 以 JSONB 数组存储
func scanPaper(row interface{ Scan(dest ...any) error }) (*domain.Paper, error) {
	var v domain.Paper
	var authorIDs []byte
	if err := row.Scan(
		&v.ID, &v.Title, &v.Abstract, &v.DOI, &v.Slug, &v.PDFURL, &v.PublishedAt,
		&v.JournalID, &v.ConferenceID, &authorIDs, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(authorIDs, &v.AuthorIDs); err != nil {
		return nil, err
	}
	if v.AuthorIDs == nil {
		v.AuthorIDs = []uuid.UUID{}
	}
	return &v, nil
}

func marshalAuthorIDs(ids []uuid.UUID) []byte {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	b, _ := json.Marshal(ids)
	return b
}

func paperWhere(f domain.PaperFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.JournalID != nil {
		args = append(args, *f.JournalID)
		conds = append(conds, fmt.Sprintf("journal_id=$%d", len(args)))
	}
	if f.ConferenceID != nil {
		args = append(args, *f.ConferenceID)
		conds = append(conds, fmt.Sprintf("conference_id=$%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PaperRepo) List(ctx context.Context, f domain.PaperFilter, page, limit int) ([]domain.Paper, int64, error) {
	where, args := paperWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM papers"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		"SELECT %s FROM papers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		paperColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Paper, 0, limit)
	for rows.Next() {
		v, err := scanPaper(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, *v)
	}
	return res, total, rows.Err()
}

func (r *PaperRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Paper, error) {
	row := r.db.QueryRow(ctx, "SELECT "+paperColumns+" FROM papers WHERE id=$1", id)
	return scanPaper(row)
}

func (r *PaperRepo) Insert(ctx context.Context, v *domain.Paper) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO papers (id, title, abstract, doi, slug, pdf_url, published_at, journal_id, conference_id, author_ids, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
        RETURNING created_at, updated_at
    `, v.ID, v.Title, v.Abstract, v.DOI, v.Slug, v.PDFURL, v.PublishedAt, v.JournalID, v.ConferenceID, marshalAuthorIDs(v.AuthorIDs))
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *PaperRepo) Update(ctx context.Context, id uuid.UUID, p domain.PaperPatch) (*domain.Paper, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}
	add := func(col string, val any) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Abstract != nil {
		add("abstract", *p.Abstract)
	}
	if p.DOI != nil {
		add("doi", *p.DOI)
	}
	if p.Slug != nil {
		add("slug", *p.Slug)
	}
	if p.PDFURL != nil {
		add("pdf_url", *p.PDFURL)
	}
	if p.PublishedAt != nil {
		add("published_at", *p.PublishedAt)
	}
	if p.JournalID != nil {
		add("journal_id", *p.JournalID)
	}
	if p.ConferenceID != nil {
		add("conference_id", *p.ConferenceID)
	}
	if p.AuthorIDs != nil {
		add("author_ids", marshalAuthorIDs(p.AuthorIDs))
	}

	query := "UPDATE papers SET " + strings.Join(set, ", ") + " WHERE id=$1 RETURNING " + paperColumns
	row := r.db.QueryRow(ctx, query, args...)
	return scanPaper(row)
}

func (r *PaperRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM papers WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
