package query

import (
	"sort"
	"strings"

	"github.com/avoronkov/todo-task-api/internal/model"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortColumns - белый список ключей сортировки и их колонок в БД.
// Неизвестный ключ молча игнорируется, порядок остается естественным.
var sortColumns = map[string]string{
	"title":     "title",
	"duedate":   "due_date",
	"completed": "completed",
}

// Normalize приводит критерии к каноничному виду: ключ сортировки
// в нижнем регистре и только из белого списка, направление asc/desc
// с умолчанием asc, page < 1 прижимается к 1, pageSize <= 0 к 10.
func Normalize(c model.Criteria) model.Criteria {
	sortBy := strings.ToLower(strings.TrimSpace(c.SortBy))
	if _, ok := sortColumns[sortBy]; !ok {
		sortBy = ""
	}
	c.SortBy = sortBy

	direction := strings.ToLower(strings.TrimSpace(c.SortDirection))
	if direction != SortDesc {
		direction = SortAsc
	}
	c.SortDirection = direction

	if c.Page < 1 {
		c.Page = DefaultPage
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// OrderColumn возвращает колонку для ORDER BY, если сортировка запрошена.
// Только значения из белого списка, пользовательский ввод в SQL не попадает.
func OrderColumn(c model.Criteria) (string, bool) {
	col, ok := sortColumns[strings.ToLower(c.SortBy)]
	return col, ok
}

// Apply выполняет композицию критериев над срезом задач в фиксированном
// порядке: фильтр -> подсчет -> сортировка -> пагинация. TotalCount
// всегда отражает только фильтр, независимо от запрошенной страницы.
func Apply(tasks []model.Task, c model.Criteria) model.PagedResult {
	c = Normalize(c)

	filtered := filter(tasks, c.TitleSearch)
	total := len(filtered)

	if c.SortBy != "" {
		sortTasks(filtered, c.SortBy, c.SortDirection)
	}

	return model.PagedResult{
		TotalCount: total,
		Items:      paginate(filtered, c.Page, c.PageSize),
	}
}

func filter(tasks []model.Task, titleSearch string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	if titleSearch == "" {
		return append(out, tasks...)
	}
	needle := strings.ToLower(titleSearch)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

func sortTasks(tasks []model.Task, sortBy, direction string) {
	less := func(a, b model.Task) bool { return false }
	switch sortBy {
	case "title":
		less = func(a, b model.Task) bool { return a.Title < b.Title }
	case "duedate":
		less = func(a, b model.Task) bool { return a.DueDate.Before(b.DueDate) }
	case "completed":
		// false раньше true при asc
		less = func(a, b model.Task) bool { return !a.Completed && b.Completed }
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if direction == SortDesc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func paginate(tasks []model.Task, page, pageSize int) []model.Task {
	offset := (page - 1) * pageSize
	if offset >= len(tasks) {
		return []model.Task{}
	}
	end := offset + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}
