package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/pkg/errors"
)

func TestConfirmationDialogLifecycle(t *testing.T) {
	d := NewConfirmationDialogs()
	target := DeleteTarget{Kind: DeleteProduct, ID: "p1"}

	_, err := d.Confirm("admin", "anything")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	dialog := d.Open("admin", target)
	current, ok := d.Current("admin")
	require.True(t, ok)
	assert.Equal(t, dialog.ID, current.ID)

	// Other admins have their own dialogs.
	_, ok = d.Current("someone-else")
	assert.False(t, ok)

	confirmed, err := d.Confirm("admin", dialog.ID)
	require.NoError(t, err)
	assert.Equal(t, target, confirmed.Target)

	_, ok = d.Current("admin")
	assert.False(t, ok)
	_, err = d.Confirm("admin", dialog.ID)
	assert.Error(t, err)
}

func TestConfirmationStaleIDKeepsDialogOpen(t *testing.T) {
	d := NewConfirmationDialogs()
	first := d.Open("admin", DeleteTarget{Kind: DeleteUser, ID: "u1"})
	second := d.Open("admin", DeleteTarget{Kind: DeleteUser, ID: "u2"})

	_, err := d.Confirm("admin", first.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	current, ok := d.Current("admin")
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
	assert.False(t, d.Cancel("admin", first.ID))

	confirmed, err := d.Confirm("admin", second.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2", confirmed.Target.ID)
}

func TestConfirmationCancel(t *testing.T) {
	d := NewConfirmationDialogs()
	assert.False(t, d.Cancel("admin", ""))

	d.Open("admin", DeleteTarget{Kind: DeleteStory, ID: "s1"})
	assert.True(t, d.Cancel("admin", ""))
	_, ok := d.Current("admin")
	assert.False(t, ok)
}

func TestConfirmationExpires(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	d := NewConfirmationDialogs()
	d.now = func() time.Time { return now }

	dialog := d.Open("admin", DeleteTarget{Kind: DeleteProduct, ID: "p1"})
	now = now.Add(dialogTTL + time.Second)

	_, ok := d.Current("admin")
	assert.False(t, ok)
	_, err := d.Confirm("admin", dialog.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestDeleteKindValid(t *testing.T) {
	for _, k := range []DeleteKind{DeleteUser, DeleteProduct, DeleteTransaction, DeleteDiagnosis, DeleteStory} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, DeleteKind("order").Valid())
}
