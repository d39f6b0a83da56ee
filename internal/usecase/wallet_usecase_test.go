package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/infrastructure/storage"
	"souqmanaqil/pkg/errors"
)

func TestWalletSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	buyer := f.register(t, "0911", "Sara", entity.RoleUser)
	other := f.register(t, "0912", "Omar", entity.RoleUser)
	wallet := NewWalletUseCase(f.txns, f.users)

	require.NoError(t, f.txns.Create(ctx, &entity.WalletTransaction{UserID: buyer.UserID, Type: entity.TransactionCredit, Amount: 500}))
	require.NoError(t, f.txns.Create(ctx, &entity.WalletTransaction{UserID: buyer.UserID, Type: entity.TransactionDebit, Amount: 120}))
	require.NoError(t, f.txns.Create(ctx, &entity.WalletTransaction{UserID: other.UserID, Type: entity.TransactionCredit, Amount: 9}))

	summary, err := wallet.Summary(ctx, buyer)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Balance)
	assert.Equal(t, 500.0, summary.Credits)
	assert.Equal(t, 120.0, summary.Debits)
	assert.Len(t, summary.Transactions, 2)

	_, err = wallet.History(ctx, entity.Identity{Guest: true})
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestDiagnosisSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	farmer := f.register(t, "0911", "Sara", entity.RoleUser)
	uc := NewDiagnosisUseCase(f.diagnoses)

	_, err := uc.Submit(ctx, farmer, DiagnosisInput{Issue: "  "})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = uc.Submit(ctx, farmer, DiagnosisInput{Issue: "rust", Urgency: "extreme"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	d, err := uc.Submit(ctx, farmer, DiagnosisInput{Issue: "leaf rust"})
	require.NoError(t, err)
	assert.Equal(t, entity.UrgencyMedium, d.Urgency)

	mine, err := uc.Mine(ctx, farmer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, farmer.UserID, mine[0].UserID)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	user := entity.Identity{UserID: "0911", Role: entity.RoleUser}
	uc := NewMediaUseCase(storage.NewDataURIStorage(), 1024)

	media, err := uc.UploadImage(ctx, user, bytes.NewReader(pngHeader), "products")
	require.NoError(t, err)
	assert.Equal(t, "image/png", media.ContentType)
	assert.True(t, strings.HasPrefix(media.URL, "data:image/png;base64,"))

	_, err = uc.UploadImage(ctx, user, strings.NewReader("plain text"), "products")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.UploadImage(ctx, user, bytes.NewReader(pngHeader), "secrets")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	big := append(append([]byte{}, pngHeader...), make([]byte, 2048)...)
	_, err = uc.UploadImage(ctx, user, bytes.NewReader(big), "products")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.UploadImage(ctx, entity.Identity{Guest: true}, bytes.NewReader(pngHeader), "products")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}
