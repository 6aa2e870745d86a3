package ticket

import (
	"strings"
	"time"
)

// TimeLayout is the persisted timestamp format: local time, no zone.
const TimeLayout = "2006-01-02 15:04:05"

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts the three levels in any letter case and returns the canonical value.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", ValidationError("priority must be one of Low, Medium, High")
}

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

type Ticket struct {
	ID         int64    `json:"id"`
	UserName   string   `json:"user_name"`
	Issue      string   `json:"issue"`
	Priority   Priority `json:"priority"`
	Status     Status   `json:"status"`
	CreatedAt  string   `json:"created_at"`
	ResolvedAt string   `json:"resolved_at"`
}

type Summary struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

type CreateTicketRequest struct {
	UserName string `json:"user_name"`
	Issue    string `json:"issue"`
	Priority string `json:"priority"`
}

func (r CreateTicketRequest) Validate() error {
	if err := validateText(r.UserName, r.Issue); err != nil {
		return err
	}
	_, err := r.PriorityLevel()
	return err
}

// PriorityLevel resolves the requested priority; an omitted value means Low.
func (r CreateTicketRequest) PriorityLevel() (Priority, error) {
	if strings.TrimSpace(r.Priority) == "" {
		return PriorityLow, nil
	}
	return ParsePriority(r.Priority)
}

func validateText(userName, issue string) error {
	if strings.TrimSpace(userName) == "" {
		return ValidationError("user_name is required")
	}
	if strings.TrimSpace(issue) == "" {
		return ValidationError("issue is required")
	}
	return nil
}

func validateNew(userName, issue string, priority Priority) error {
	if err := validateText(userName, issue); err != nil {
		return err
	}
	if !priority.Valid() {
		return ValidationError("priority must be one of Low, Medium, High")
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}
