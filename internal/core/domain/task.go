package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every valid status, in display order.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusDone}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s TaskStatus) bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskPriorities lists every valid priority, in display order.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

// ValidPriority reports whether p is a member of the priority enumeration.
func ValidPriority(p TaskPriority) bool {
	for _, v := range TaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}

// Task is owned by exactly one user for its entire lifetime; OwnerID is the
// foreign key and there is no reassignment operation.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	OwnerID     string       `json:"owner_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
