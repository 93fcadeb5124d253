package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avoronkov/todo-task-api/internal/model"
	"github.com/avoronkov/todo-task-api/internal/query"
)

var ErrNotFound = errors.New("not found")

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) GetAll(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, due_date, completed
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, due_date, completed
		FROM tasks
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Completed)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// GetByCriteria выполняет композицию фильтр -> подсчет -> сортировка -> пагинация.
// Подсчет идет до пагинации, поэтому totalCount не зависит от номера страницы.
func (r *TaskRepo) GetByCriteria(ctx context.Context, c model.Criteria) (model.PagedResult, error) {
	c = query.Normalize(c)

	where := ""
	args := []any{}
	if c.TitleSearch != "" {
		where = `WHERE title ILIKE '%' || $1 || '%' ESCAPE '\'`
		args = append(args, escapeLike(c.TitleSearch))
	}

	var total int
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM tasks %s", where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return model.PagedResult{}, err
	}

	// Порядок по id как тай-брейк, чтобы страницы были детерминированы
	orderBy := "ORDER BY id"
	if col, ok := query.OrderColumn(c); ok {
		dir := "ASC"
		if c.SortDirection == query.SortDesc {
			dir = "DESC"
		}
		orderBy = fmt.Sprintf("ORDER BY %s %s, id", col, dir)
	}

	limitPos := len(args) + 1
	args = append(args, c.PageSize, (c.Page-1)*c.PageSize)

	listSQL := fmt.Sprintf(`
		SELECT id, title, description, due_date, completed
		FROM tasks
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, limitPos, limitPos+1)

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return model.PagedResult{}, err
	}
	defer rows.Close()

	items, err := scanTasks(rows)
	if err != nil {
		return model.PagedResult{}, err
	}

	return model.PagedResult{TotalCount: total, Items: items}, nil
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	// id из запроса игнорируется, генерацию отдаем БД
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, due_date, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.Title, t.Description, t.DueDate, t.Completed).Scan(&t.ID)
	return t, err
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, completed = $5
		WHERE id = $1
	`, t.ID, t.Title, t.Description, t.DueDate, t.Completed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepo) MarkComplete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE tasks SET completed = TRUE WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы % и _ в поисковой
// строке совпадали буквально, как и в варианте в памяти
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Completed); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
