package agspayment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namogange/pkg/ags"
)

func TestTransitionTo(t *testing.T) {
	p := &AGSPayment{PaymentStatus: string(ags.StatusActive)}

	require.NoError(t, p.TransitionTo(""))
	require.NoError(t, p.TransitionTo(ags.StatusActive))
	assert.True(t, p.IsActive())

	require.NoError(t, p.TransitionTo(ags.StatusCancelled))
	assert.False(t, p.IsActive())

	require.NoError(t, p.TransitionTo(ags.StatusCancelled))
	assert.ErrorIs(t, p.TransitionTo(ags.StatusActive), ErrReactivate)
	assert.Equal(t, string(ags.StatusCancelled), p.PaymentStatus)
}

func TestApply_KeepsIdentityFields(t *testing.T) {
	p := &AGSPayment{
		ClientID:       "C1",
		RegistrationNo: "REG-001",
		CreatedBy:      "Asha",
		UpdatedBy:      "Asha",
	}

	err := p.Apply(ags.Payment{
		ClientID:        "C9",
		RegistrationNo:  "REG-999",
		PaymentFor:      ags.ForSeminarOnly,
		SeminarDay:      ags.Day2,
		IdentityNumber:  " ABCDE1234F ",
		Amount:          " 1200.50 ",
		Mode:            ags.ModeNeftRtgs,
		BankReferenceNo: "UTR123",
		CreatedBy:       "Mallory",
		UpdatedBy:       "Ravi",
	})
	require.NoError(t, err)

	out := p.ToAGS()
	assert.Equal(t, "C1", out.ClientID)
	assert.Equal(t, "REG-001", out.RegistrationNo)
	assert.Equal(t, "Asha", out.CreatedBy)
	assert.Equal(t, "Ravi", out.UpdatedBy)
	assert.Equal(t, "ABCDE1234F", out.IdentityNumber)
	assert.Equal(t, "1200.5", out.Amount)
	assert.Equal(t, ags.ModeNeftRtgs, out.Mode)
	assert.Equal(t, "UTR123", out.BankReferenceNo)
}

func TestApply_InvalidAmount(t *testing.T) {
	p := &AGSPayment{}
	assert.Error(t, p.Apply(ags.Payment{Amount: "five hundred"}))

	// decimal(12,2) 会把 0.001 截成 0
	for _, amount := range []string{"0.001", "0", "-5"} {
		assert.ErrorIs(t, p.Apply(ags.Payment{Amount: amount}), ErrAmount, amount)
	}
	assert.True(t, p.Amount.IsZero(), "rejected amount is not applied")
}
