// Package reminder renders pending tasks into push-message text. All
// functions are pure: no I/O, no clock access, and no reordering of the
// input. Callers own the query ordering.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/kyungmin-dev/taskbell/internal/domain"
)

const (
	morningEmptyLine = "Nothing scheduled for today. Enjoy your day!"
	eveningEmptyLine = "Everything is done for today! Great work, rest well."
)

// MorningDigest renders the morning reminder: a dated header, the urgent and
// normal task sections, and a total count.
func MorningDigest(now time.Time, tasks []domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Daily digest] %s\nToday's tasks\n\n", now.Format("Monday, January 2"))

	if len(tasks) == 0 {
		b.WriteString(morningEmptyLine)
		return b.String()
	}

	var elevated, normal []domain.Task
	for _, task := range tasks {
		if task.Priority.IsElevated() {
			elevated = append(elevated, task)
		} else {
			normal = append(normal, task)
		}
	}

	if len(elevated) > 0 {
		b.WriteString("Urgent / important\n")
		for _, task := range elevated {
			fmt.Fprintf(&b, "  - %s\n", task.Title)
		}
		b.WriteString("\n")
	}

	if len(normal) > 0 {
		b.WriteString("Other tasks\n")
		for _, task := range normal {
			fmt.Fprintf(&b, "  - %s\n", task.Title)
		}
	}

	fmt.Fprintf(&b, "\nYou have %d task(s) today.", len(tasks))
	return b.String()
}

// EveningCheck renders the evening incomplete-task check: one completion
// question per task with a priority marker, and a remaining count.
func EveningCheck(tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString("[Evening check]\n\n")

	if len(tasks) == 0 {
		b.WriteString(eveningEmptyLine)
		return b.String()
	}

	b.WriteString("Still open:\n\n")
	for _, task := range tasks {
		fmt.Fprintf(&b, "%s Did you finish %q?\n", priorityMarker(task.Priority), task.Title)
	}

	fmt.Fprintf(&b, "\n%d task(s) remaining.", len(tasks))
	return b.String()
}

// OverdueAlert renders the overdue-task alert. The caller must only invoke it
// with a non-empty list; emptiness is not handled here.
func OverdueAlert(tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString("[Overdue]\nThese tasks are past their due date:\n\n")

	for _, task := range tasks {
		fmt.Fprintf(&b, "🚨 %s\n", task.Title)
	}

	b.WriteString("\nPlease take a look soon.")
	return b.String()
}

func priorityMarker(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return "🚨"
	case domain.PriorityHigh:
		return "⚠️"
	default:
		return "📌"
	}
}
