package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avoronkov/todo-task-api/internal/model"
)

const maxTitleLength = 100

// ValidationErrors - ошибки полей вида поле -> сообщение.
// Отдается клиенту как тело 400 ответа.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateTask проверяет ограничения полей. Проверка дедлайна идет при
// каждой записи, не только при создании - так же, как делает и клиент.
func ValidateTask(t model.Task, now time.Time) error {
	errs := ValidationErrors{}

	if strings.TrimSpace(t.Title) == "" {
		errs["title"] = "Title is required"
	} else if len([]rune(t.Title)) > maxTitleLength {
		errs["title"] = fmt.Sprintf("Title must not exceed %d characters", maxTitleLength)
	}

	if !t.DueDate.After(now) {
		errs["dueDate"] = "Date must be in the future"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
