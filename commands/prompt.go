package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/form"
)

// prompter runs a field-by-field interactive edit session. Each answered
// field is observed by the guard, so the leave interceptor is armed the
// moment the session diverges from the saved state.
type prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	guard *form.Guard
}

func newPrompter(in io.Reader, out io.Writer, guard *form.Guard) *prompter {
	return &prompter{
		in:    bufio.NewScanner(in),
		out:   out,
		guard: guard,
	}
}

// field asks for one field, returning the current value when the user
// presses enter.
func (p *prompter) field(label, current string) string {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	if !p.in.Scan() {
		return current
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return current
	}
	return answer
}

// cafe edits a café form in place.
func (p *prompter) cafe(f *form.CafeForm) {
	f.Name = p.field("Name", f.Name)
	p.observe(f.Snapshot())
	f.Description = p.field("Description", f.Description)
	p.observe(f.Snapshot())
	f.Location = p.field("Location", f.Location)
	p.observe(f.Snapshot())
}

// employee edits an employee form in place.
func (p *prompter) employee(f *form.EmployeeForm) {
	f.Name = p.field("Name", f.Name)
	p.observe(f.Snapshot())
	f.EmailAddress = p.field("Email address", f.EmailAddress)
	p.observe(f.Snapshot())
	f.PhoneNumber = p.field("Phone number", f.PhoneNumber)
	p.observe(f.Snapshot())
	f.Gender = promptGender(p, f.Gender)
	p.observe(f.Snapshot())
	f.AssignedCafeID = p.field("Assigned cafe id", f.AssignedCafeID)
	p.observe(f.Snapshot())
}

func promptGender(p *prompter, current api.Gender) api.Gender {
	return api.Gender(p.field("Gender (Male/Female)", string(current)))
}

func (p *prompter) observe(s form.Snapshot) {
	if p.guard != nil {
		p.guard.Observe(s)
	}
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", message)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
