package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportParams struct {
	CustomerID string `query:"customer_id" validate:"required"`
	From       string `query:"from" validate:"required,datetime=2006-01-02"`
	To         string `json:"to" validate:"required,datetime=2006-01-02"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(&reportParams{CustomerID: "1", From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)
}

func TestStruct_CollectsAllFields(t *testing.T) {
	err := Struct(&reportParams{From: "01/02/2025"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)

	assert.Equal(t, FieldError{Field: "customer_id", Tag: "required"}, verr.Fields[0])
	assert.Equal(t, "from", verr.Fields[1].Field)
	assert.Equal(t, "datetime", verr.Fields[1].Tag)
	assert.Equal(t, "to", verr.Fields[2].Field)

	assert.Contains(t, err.Error(), "customer_id is required")
	assert.Contains(t, err.Error(), "from must be a date formatted as 2006-01-02")
}

func TestValidator_Singleton(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}
