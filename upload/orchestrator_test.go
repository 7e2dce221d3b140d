package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafedesk/cafedesk/api"
)

type fakeUploader struct {
	calls    int
	lastID   string
	lastName string
	url      string
	err      error
}

func (f *fakeUploader) UploadLogo(ctx context.Context, cafeID, filename string, file io.Reader) (string, error) {
	f.calls++
	f.lastID = cafeID
	f.lastName = filename
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func pending() *Attachment {
	return &Attachment{Name: "logo.png", Size: 1024, Content: strings.NewReader("png-bytes")}
}

func TestResolve_EditUploadsUnderOwnerIdentity(t *testing.T) {
	up := &fakeUploader{url: "/logos/c1/logo.png"}
	o := NewOrchestrator(up)

	logo, err := o.Resolve(context.Background(), Request{OwnerID: "c1", Pending: pending()})
	require.NoError(t, err)
	require.NotNil(t, logo)
	assert.Equal(t, "/logos/c1/logo.png", *logo)
	assert.Equal(t, "c1", up.lastID)
	assert.Equal(t, 1, up.calls)
}

func TestResolve_CreateAllocatesTemporaryIdentity(t *testing.T) {
	up := &fakeUploader{url: "/logos/tmp/logo.png"}
	o := NewOrchestrator(up)

	_, err := o.Resolve(context.Background(), Request{Pending: pending()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.lastID, "temp-"), "got %q", up.lastID)
}

func TestResolve_TemporaryIdentitiesAreUnique(t *testing.T) {
	up := &fakeUploader{url: "/logos/tmp/logo.png"}
	o := NewOrchestrator(up)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		_, err := o.Resolve(context.Background(), Request{Pending: pending()})
		require.NoError(t, err)
		require.False(t, seen[up.lastID], "temporary identity %q reused", up.lastID)
		seen[up.lastID] = true
	}
}

func TestResolve_UploadFailureFailsClosed(t *testing.T) {
	up := &fakeUploader{err: api.NewUploadError(errors.New("disk full"))}
	o := NewOrchestrator(up)

	_, err := o.Resolve(context.Background(), Request{OwnerID: "c1", Pending: pending()})
	require.Error(t, err)
	assert.True(t, api.IsUpload(err))
}

func TestResolve_PreflightRejectsBeforeNetwork(t *testing.T) {
	up := &fakeUploader{url: "/logos/c1/logo.gif"}
	o := NewOrchestrator(up)

	bad := &Attachment{Name: "logo.gif", Size: 1024, Content: strings.NewReader("gif")}
	_, err := o.Resolve(context.Background(), Request{OwnerID: "c1", Pending: bad})
	require.Error(t, err)
	assert.True(t, api.IsUpload(err))
	assert.Zero(t, up.calls, "rejected files must never reach the network")
}

func TestResolve_ClearedAttachmentIsExplicitNull(t *testing.T) {
	up := &fakeUploader{}
	o := NewOrchestrator(up)

	existing := "/logos/c1/old.png"
	logo, err := o.Resolve(context.Background(), Request{OwnerID: "c1", Existing: &existing, Cleared: true})
	require.NoError(t, err)
	assert.Nil(t, logo)
	assert.Zero(t, up.calls)
}

func TestResolve_NoChangeRetainsExisting(t *testing.T) {
	up := &fakeUploader{}
	o := NewOrchestrator(up)

	existing := "/logos/c1/old.png"
	logo, err := o.Resolve(context.Background(), Request{OwnerID: "c1", Existing: &existing})
	require.NoError(t, err)
	require.NotNil(t, logo)
	assert.Equal(t, existing, *logo)

	blank := "  "
	logo, err = o.Resolve(context.Background(), Request{OwnerID: "c1", Existing: &blank})
	require.NoError(t, err)
	assert.Nil(t, logo, "whitespace logos normalize to null")
}
