package form

import (
	"github.com/cafedesk/cafedesk/api"
)

// CafeForm is the editable café form content.
type CafeForm struct {
	Name        string `validate:"required,min=6,max=10"`
	Description string `validate:"required,max=256"`
	Location    string `validate:"required"`
	Logo        *string
}

// Snapshot renders the form for dirty comparison.
func (f CafeForm) Snapshot() Snapshot {
	logo := ""
	if f.Logo != nil {
		logo = *f.Logo
	}
	return Snapshot{
		"name":        f.Name,
		"description": f.Description,
		"location":    f.Location,
		"logo":        logo,
	}
}

// Payload builds the wire payload, with the logo normalized so absence is
// an explicit null.
func (f CafeForm) Payload() api.CafePayload {
	return api.CafePayload{
		Name:        f.Name,
		Description: f.Description,
		Location:    f.Location,
		Logo:        api.NormalizeLogo(f.Logo),
	}
}

// CafeFormFrom populates a form from a canonical record for editing.
func CafeFormFrom(c api.Cafe) CafeForm {
	return CafeForm{
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Logo:        c.Logo,
	}
}

// EmployeeForm is the editable employee form content. AssignedCafeID empty
// means unassigned.
type EmployeeForm struct {
	Name           string     `validate:"required,min=6,max=10"`
	EmailAddress   string     `validate:"required,email"`
	PhoneNumber    string     `validate:"required,localphone"`
	Gender         api.Gender `validate:"required,oneof=Male Female"`
	AssignedCafeID string
}

// Snapshot renders the form for dirty comparison.
func (f EmployeeForm) Snapshot() Snapshot {
	return Snapshot{
		"name":             f.Name,
		"email_address":    f.EmailAddress,
		"phone_number":     f.PhoneNumber,
		"gender":           string(f.Gender),
		"assigned_cafe_id": f.AssignedCafeID,
	}
}

// Payload builds the wire payload. An empty café assignment serializes as
// an explicit null, meaning unassigned.
func (f EmployeeForm) Payload() api.EmployeePayload {
	var cafeID *string
	if f.AssignedCafeID != "" {
		id := f.AssignedCafeID
		cafeID = &id
	}
	return api.EmployeePayload{
		Name:           f.Name,
		EmailAddress:   f.EmailAddress,
		PhoneNumber:    f.PhoneNumber,
		Gender:         f.Gender,
		AssignedCafeID: cafeID,
	}
}

// EmployeeFormFrom populates a form from a canonical record for editing.
// The record carries only the denormalized café name, so the assignment id
// is resolved against the café list; an employee whose café is absent from
// the list comes back unassigned.
func EmployeeFormFrom(e api.Employee, cafes []api.Cafe) EmployeeForm {
	f := EmployeeForm{
		Name:         e.Name,
		EmailAddress: e.EmailAddress,
		PhoneNumber:  e.PhoneNumber,
		Gender:       e.Gender,
	}
	for _, c := range cafes {
		if c.Name == e.CafeName {
			f.AssignedCafeID = c.ID
			break
		}
	}
	return f
}
