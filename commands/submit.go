package commands

import (
	"context"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/form"
	"github.com/cafedesk/cafedesk/upload"
)

// cafeSaver and employeeSaver are the coordinator surfaces the submission
// flows drive, narrowed for testability.
type cafeSaver interface {
	SaveCafe(ctx context.Context, id string, payload api.CafePayload) (*api.Cafe, error)
}

type employeeSaver interface {
	SaveEmployee(ctx context.Context, id string, payload api.EmployeePayload) (*api.Employee, error)
}

type logoResolver interface {
	Resolve(ctx context.Context, req upload.Request) (*string, error)
}

// submitCafe runs one café form submission end to end: validation at the
// form boundary, then the upload phase, then the save. The upload strictly
// precedes the save and a failed upload stops everything; the guard is
// committed only after the save succeeds.
func submitCafe(
	ctx context.Context,
	resolver logoResolver,
	saver cafeSaver,
	guard *form.Guard,
	f form.CafeForm,
	id string,
	pending *upload.Attachment,
	cleared bool,
) (*api.Cafe, error) {
	guard.Observe(f.Snapshot())

	if err := form.Validate(f); err != nil {
		return nil, err
	}

	logo, err := resolver.Resolve(ctx, upload.Request{
		OwnerID:  id,
		Pending:  pending,
		Existing: f.Logo,
		Cleared:  cleared,
	})
	if err != nil {
		return nil, err
	}

	payload := f.Payload()
	payload.Logo = logo

	cafe, err := saver.SaveCafe(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	guard.MarkSaved()
	return cafe, nil
}

// submitEmployee runs one employee form submission: validation, then save,
// then guard commit.
func submitEmployee(
	ctx context.Context,
	saver employeeSaver,
	guard *form.Guard,
	f form.EmployeeForm,
	id string,
) (*api.Employee, error) {
	guard.Observe(f.Snapshot())

	if err := form.Validate(f); err != nil {
		return nil, err
	}

	employee, err := saver.SaveEmployee(ctx, id, f.Payload())
	if err != nil {
		return nil, err
	}

	guard.MarkSaved()
	return employee, nil
}
