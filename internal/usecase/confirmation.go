package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/pkg/errors"
)

// dialogTTL bounds how long an unanswered confirmation stays open.
const dialogTTL = 5 * time.Minute

type DeleteKind string

const (
	DeleteUser        DeleteKind = "user"
	DeleteProduct     DeleteKind = "product"
	DeleteTransaction DeleteKind = "transaction"
	DeleteDiagnosis   DeleteKind = "diagnosis"
	DeleteStory       DeleteKind = "story"
)

func (k DeleteKind) Valid() bool {
	switch k {
	case DeleteUser, DeleteProduct, DeleteTransaction, DeleteDiagnosis, DeleteStory:
		return true
	}
	return false
}

// DeleteTarget names the record a dialog asks about. OwnerID is required for
// diagnoses, which live under their owner.
type DeleteTarget struct {
	Kind    DeleteKind `json:"kind"`
	ID      string     `json:"id"`
	OwnerID string     `json:"ownerId,omitempty"`
}

type Dialog struct {
	ID       string       `json:"id"`
	Target   DeleteTarget `json:"target"`
	OpenedAt time.Time    `json:"openedAt"`
}

// ConfirmationDialogs holds at most one open dialog per admin:
// closed → open(target) → confirmed or cancelled → closed.
type ConfirmationDialogs struct {
	mu   sync.Mutex
	open map[string]*Dialog
	now  func() time.Time
}

func NewConfirmationDialogs() *ConfirmationDialogs {
	return &ConfirmationDialogs{
		open: make(map[string]*Dialog),
		now:  time.Now,
	}
}

// Open replaces any dialog the owner already has open.
func (d *ConfirmationDialogs) Open(owner string, target DeleteTarget) *Dialog {
	dialog := &Dialog{
		ID:       uuid.New().String(),
		Target:   target,
		OpenedAt: d.now().UTC(),
	}

	d.mu.Lock()
	d.open[owner] = dialog
	d.mu.Unlock()

	return dialog
}

func (d *ConfirmationDialogs) Current(owner string) (*Dialog, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current(owner)
}

func (d *ConfirmationDialogs) current(owner string) (*Dialog, bool) {
	dialog, ok := d.open[owner]
	if !ok {
		return nil, false
	}
	if d.now().Sub(dialog.OpenedAt) > dialogTTL {
		delete(d.open, owner)
		return nil, false
	}
	return dialog, true
}

// Confirm closes the dialog and hands back its target. A stale dialog ID
// leaves the open dialog untouched.
func (d *ConfirmationDialogs) Confirm(owner, dialogID string) (*Dialog, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dialog, ok := d.current(owner)
	if !ok {
		return nil, errors.BadRequest("No deletion is awaiting confirmation", nil)
	}
	if dialog.ID != dialogID {
		return nil, errors.BadRequest("Confirmation does not match the open dialog", nil)
	}

	delete(d.open, owner)
	return dialog, nil
}

// Cancel closes the owner's dialog. An empty dialogID cancels whatever is
// open. It reports whether a dialog was closed.
func (d *ConfirmationDialogs) Cancel(owner, dialogID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	dialog, ok := d.current(owner)
	if !ok || (dialogID != "" && dialog.ID != dialogID) {
		return false
	}
	delete(d.open, owner)
	return true
}
