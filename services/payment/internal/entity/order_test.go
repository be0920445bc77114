package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFee(t *testing.T) {
	cases := []struct {
		amount, feePercent, wantFee, wantNet int
	}{
		{100, 15, 15, 85},
		{1, 15, 0, 1},
		{3, 15, 0, 3},
		{4, 15, 1, 3},
		{100, 0, 0, 100},
		{100, 100, 100, 0},
		{999, 15, 150, 849},
	}

	for _, tc := range cases {
		fee, net := ComputeFee(tc.amount, tc.feePercent)
		assert.Equal(t, tc.wantFee, fee, "fee for %d at %d%%", tc.amount, tc.feePercent)
		assert.Equal(t, tc.wantNet, net, "net for %d at %d%%", tc.amount, tc.feePercent)
		assert.Equal(t, tc.amount, fee+net, "fee and net must recompose the amount")
	}
}

func TestValidReferenceType(t *testing.T) {
	assert.True(t, ValidReferenceType(ReferenceSubscription))
	assert.True(t, ValidReferenceType(ReferenceUnlock))
	assert.True(t, ValidReferenceType(ReferenceTip))
	assert.True(t, ValidReferenceType(ReferenceLivestream))
	assert.False(t, ValidReferenceType(ReferenceType("refund")))
	assert.False(t, ValidReferenceType(ReferenceType("")))
}
