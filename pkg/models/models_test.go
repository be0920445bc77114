package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Username: "testuser",
		Role:     RoleViewer,
		IsActive: true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Username: "testuser",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		CreatorID:  "creator-123",
		Title:      "Test Post",
		Visibility: VisibilityPublic,
		Status:     StatusPending,
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestOrder_BeforeCreate(t *testing.T) {
	order := &Order{
		UserID:        "user-123",
		ReferenceType: ReferenceUnlock,
		ReferenceID:   "post-123",
		Amount:        100,
		Status:        OrderStatusPending,
	}

	err := order.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
}

func TestWallet_BeforeCreate(t *testing.T) {
	wallet := &Wallet{UserID: "user-123"}

	err := wallet.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, wallet.ID)
}

func TestPostStatus_Constants(t *testing.T) {
	assert.Equal(t, PostStatus("pending"), StatusPending)
	assert.Equal(t, PostStatus("approved"), StatusApproved)
	assert.Equal(t, PostStatus("rejected"), StatusRejected)
	assert.Equal(t, PostStatus("removed"), StatusRemoved)
}

func TestPostVisibility_Constants(t *testing.T) {
	assert.Equal(t, PostVisibility("public"), VisibilityPublic)
	assert.Equal(t, PostVisibility("followers"), VisibilityFollowers)
	assert.Equal(t, PostVisibility("subscribers"), VisibilitySubscribers)
}

func TestOrderStatus_Constants(t *testing.T) {
	assert.Equal(t, OrderStatus("pending"), OrderStatusPending)
	assert.Equal(t, OrderStatus("completed"), OrderStatusCompleted)
	assert.Equal(t, OrderStatus("failed"), OrderStatusFailed)
	assert.Equal(t, OrderStatus("cancelled"), OrderStatusCancelled)
}

func TestReferenceType_Constants(t *testing.T) {
	assert.Equal(t, ReferenceType("subscription"), ReferenceSubscription)
	assert.Equal(t, ReferenceType("unlock"), ReferenceUnlock)
	assert.Equal(t, ReferenceType("tip"), ReferenceTip)
	assert.Equal(t, ReferenceType("livestream"), ReferenceLivestream)
}
