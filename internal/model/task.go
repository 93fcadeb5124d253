package model

import "time"

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
}

// Equal сравнивает задачи по всем пяти полям
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID || t.Title != other.Title || t.Completed != other.Completed {
		return false
	}
	if !t.DueDate.Equal(other.DueDate) {
		return false
	}
	if (t.Description == nil) != (other.Description == nil) {
		return false
	}
	if t.Description != nil && *t.Description != *other.Description {
		return false
	}
	return true
}

// PagedResult - одна страница выборки плюс общее число совпадений
type PagedResult struct {
	TotalCount int    `json:"totalCount"`
	Items      []Task `json:"items"`
}

// Criteria - сырые параметры запроса списка задач
type Criteria struct {
	TitleSearch   string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}
