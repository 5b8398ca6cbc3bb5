package notify

import "fmt"

// Channels of the notification unit.
const (
	ChannelEmail = "email"
	ChannelTask  = "task"
)

// Status of one side effect.
type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome is the result of one side effect. Failures carry the error and, for
// HTTP-backed channels, the response status and body.
type Outcome struct {
	Channel    string
	Status     Status
	StatusCode int
	Body       string
	Ref        string
	Reason     string
	Err        error
}

func (o Outcome) OK() bool { return o.Status == StatusSent }

func (o Outcome) String() string {
	switch {
	case o.Err != nil:
		return fmt.Sprintf("%s %s: %v", o.Channel, o.Status, o.Err)
	case o.Reason != "":
		return fmt.Sprintf("%s %s: %s", o.Channel, o.Status, o.Reason)
	default:
		return fmt.Sprintf("%s %s", o.Channel, o.Status)
	}
}

// Report collects both outcomes for one submission.
type Report struct {
	ContactID string
	Email     Outcome
	Task      Outcome
}

// Outcomes returns the outcomes in execution order.
func (r Report) Outcomes() []Outcome {
	return []Outcome{r.Email, r.Task}
}
