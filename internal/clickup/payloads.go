package clickup

// Priority levels accepted by the ClickUp task API.
const (
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityNormal = 3
	PriorityLow    = 4
)

// TaskRequest is the body of a create-task call.
type TaskRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Task is the subset of the create-task response we keep.
type Task struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}
