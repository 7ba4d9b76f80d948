package jira

import "fmt"

// APIError describes a non-2xx response from the Jira API.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira: %s failed with status %d: %s", e.Operation, e.Status, e.Message)
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Project     projectRef `json:"project"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	IssueType   nameRef    `json:"issuetype"`
	Priority    *nameRef   `json:"priority,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
}

type projectRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type createIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
