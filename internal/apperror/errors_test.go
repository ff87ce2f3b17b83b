package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("order", 7), KindNotFound},
		{"validation", Validation(MsgInsufficientStock, "insufficient stock", nil), KindValidation},
		{"storage", Storage(sql.ErrConnDone), KindStorage},
		{"wrapped validation", fmt.Errorf("create order: %w", Validation(MsgEmptyItems, "no items", nil)), KindValidation},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStorageKeepsExistingKind(t *testing.T) {
	nf := NotFound("product", 3)
	assert.Same(t, nf, Storage(nf))
	assert.Nil(t, Storage(nil))

	err := Storage(sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "storage failure")
}
