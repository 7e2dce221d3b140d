package api

import "strings"

// Gender is the closed set of employee gender values accepted by the service.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Cafe is the canonical café record as returned by the resource service.
// Employees is a derived count maintained server-side; it is never written
// by the client.
type Cafe struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Logo        *string `json:"logo"`
	Employees   int     `json:"employees"`
}

// CafePayload is the write shape for cafés: no id, no derived fields.
// Logo has no omitempty on purpose: an absent logo must serialize as an
// explicit null, not disappear from the payload.
type CafePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Logo        *string `json:"logo"`
}

// Employee is the canonical employee record. DaysWorked is server-derived
// and reported as 0 for unassigned employees; CafeName is a denormalized
// display field and is never sent on writes.
type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	Gender       Gender `json:"gender"`
	DaysWorked   int    `json:"days_worked"`
	CafeName     string `json:"cafe_name,omitempty"`
}

// EmployeePayload is the write shape for employees. AssignedCafeID nil
// serializes as an explicit null, meaning "unassigned".
type EmployeePayload struct {
	Name           string  `json:"name"`
	EmailAddress   string  `json:"email_address"`
	PhoneNumber    string  `json:"phone_number"`
	Gender         Gender  `json:"gender"`
	AssignedCafeID *string `json:"assigned_cafe_id"`
}

// NormalizeLogo maps empty and whitespace-only logo values to nil so that
// every write carries either a real URL or an explicit null.
func NormalizeLogo(logo *string) *string {
	if logo == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*logo)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
