package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuezh000/WisPaper-SEO-sub001/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, type, status, priority, payload, result, error_message, retry_count, max_retries, scheduled_at, started_at, completed_at, created_at, updated_at`

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{db: db}
}

func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID, &t.Type, &t.Status, &t.Priority, &t.Payload, &t.Result, &t.ErrorMessage,
		&t.RetryCount, &t.MaxRetries, &t.ScheduledAt, &t.StartedAt, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// taskWhere 按过滤条件拼接 WHERE 子句（nil 表示不过滤）
func taskWhere(f domain.TaskFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Type != nil {
		args = append(args, *f.Type)
		conds = append(conds, fmt.Sprintf("type=$%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		conds = append(conds, fmt.Sprintf("priority=$%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// 排序字段白名单，非法字段回退到 created_at
func taskOrderBy(s domain.TaskSort) string {
	col := "created_at"
	switch s.Field {
	case "created_at", "updated_at", "priority", "status", "type", "scheduled_at":
		col = s.Field
	}
	dir := "DESC"
	if !s.Desc {
		dir = "ASC"
	}
	return col + " " + dir
}

// List 分页查询任务，count 与列表使用同一过滤谓词
func (r *TaskRepo) List(ctx context.Context, f domain.TaskFilter, sort domain.TaskSort, page, limit int) ([]domain.Task, int64, error) {
	where, args := taskWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY %s LIMIT $%d OFFSET $%d",
		taskColumns, where, taskOrderBy(sort), len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	res := make([]domain.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, *t)
	}
	return res, total, rows.Err()
}

// GetByID 根据任务 ID 查询完整的任务信息
func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id=$1", id)
	return scanTask(row)
}

// Insert 向 tasks 表中插入一条新的任务记录，时间戳由库维护
func (r *TaskRepo) Insert(ctx context.Context, t *domain.Task) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO tasks (id, type, status, priority, payload, max_retries, scheduled_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING retry_count, created_at, updated_at
    `, t.ID, t.Type, t.Status, t.Priority, t.Payload, t.MaxRetries, t.ScheduledAt)
	return row.Scan(&t.RetryCount, &t.CreatedAt, &t.UpdatedAt)
}

// Update 部分更新：只写入 patch 中非 nil 的字段，返回更新后的记录
func (r *TaskRepo) Update(ctx context.Context, id uuid.UUID, p domain.TaskPatch) (*domain.Task, error) {
	set := []string{"updated_at=NOW()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Type != nil {
		add("type", *p.Type)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Priority != nil {
		add("priority", *p.Priority)
	}
	if p.Payload != nil {
		add("payload", p.Payload)
	}
	if p.Result != nil {
		add("result", p.Result)
	}
	if p.ErrorMessage != nil {
		add("error_message", *p.ErrorMessage)
	}
	if p.StartedAt != nil {
		add("started_at", *p.StartedAt)
	}
	if p.CompletedAt != nil {
		add("completed_at", *p.CompletedAt)
	}

	query := "UPDATE tasks SET " + strings.Join(set, ", ") + " WHERE id=$1 RETURNING " + taskColumns
	row := r.db.QueryRow(ctx, query, args...)
	return scanTask(row)
}

// Delete 硬删除任务，task_logs 由外键级联删除
func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM tasks WHERE id=$1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListLogs 获取任务的日志，按时间倒序
func (r *TaskRepo) ListLogs(ctx context.Context, taskID uuid.UUID) ([]domain.TaskLog, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, task_id, level, message, data, created_at
        FROM task_logs WHERE task_id=$1
        ORDER BY created_at DESC
    `, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.TaskLog, 0)
	for rows.Next() {
		var l domain.TaskLog
		if err := rows.Scan(&l.ID, &l.TaskID, &l.Level, &l.Message, &l.Data, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountGrouped 统计各状态和各类型的任务数量，供仪表盘使用
func (r *TaskRepo) CountGrouped(ctx context.Context) (map[string]int64, map[string]int64, error) {
	byStatus, err := r.countBy(ctx, "status")
	if err != nil {
		return nil, nil, err
	}
	byType, err := r.countBy(ctx, "type")
	if err != nil {
		return nil, nil, err
	}
	return byStatus, byType, nil
}

func (r *TaskRepo) countBy(ctx context.Context, col string) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT %s, COUNT(*) FROM tasks GROUP BY %s", col, col))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
