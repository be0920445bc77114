package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanView_RuleOrder(t *testing.T) {
	viewer := "viewer-1"
	creator := "creator-1"

	tests := []struct {
		name string
		post Post
		rel  ViewerRelationship
		want bool
	}{
		{
			name: "stranger sees free public sfw post",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic},
			rel:  ViewerRelationship{},
			want: true,
		},
		{
			name: "owner sees own nsfw paid subscriber post",
			post: Post{CreatorID: viewer, Visibility: VisibilitySubscribers, IsNSFW: true, UnlockPrice: 50},
			rel:  ViewerRelationship{IsOwner: true},
			want: true,
		},
		{
			name: "unpaid unlock locked even for subscriber",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, UnlockPrice: 100},
			rel:  ViewerRelationship{IsFollowing: true, IsSubscribed: true},
			want: false,
		},
		{
			name: "paid unlock visible on public sfw post",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, UnlockPrice: 100},
			rel:  ViewerRelationship{IsPurchased: true},
			want: true,
		},
		{
			name: "purchase does not bypass nsfw subscription gate",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, IsNSFW: true, UnlockPrice: 100},
			rel:  ViewerRelationship{IsPurchased: true},
			want: false,
		},
		{
			name: "purchased nsfw subscribers-only without subscription stays locked",
			post: Post{CreatorID: creator, Visibility: VisibilitySubscribers, IsNSFW: true, UnlockPrice: 100},
			rel:  ViewerRelationship{IsPurchased: true, IsFollowing: true},
			want: false,
		},
		{
			name: "nsfw public free post requires subscription",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, IsNSFW: true},
			rel:  ViewerRelationship{IsFollowing: true},
			want: false,
		},
		{
			name: "nsfw public free post visible to subscriber",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, IsNSFW: true},
			rel:  ViewerRelationship{IsSubscribed: true},
			want: true,
		},
		{
			name: "subscribers-only locked for follower",
			post: Post{CreatorID: creator, Visibility: VisibilitySubscribers},
			rel:  ViewerRelationship{IsFollowing: true},
			want: false,
		},
		{
			name: "subscribers-only visible to subscriber",
			post: Post{CreatorID: creator, Visibility: VisibilitySubscribers},
			rel:  ViewerRelationship{IsSubscribed: true},
			want: true,
		},
		{
			name: "followers-only locked for stranger",
			post: Post{CreatorID: creator, Visibility: VisibilityFollowers},
			rel:  ViewerRelationship{},
			want: false,
		},
		{
			name: "followers-only visible to follower",
			post: Post{CreatorID: creator, Visibility: VisibilityFollowers},
			rel:  ViewerRelationship{IsFollowing: true},
			want: true,
		},
		{
			name: "subscriber satisfies followers gate",
			post: Post{CreatorID: creator, Visibility: VisibilityFollowers},
			rel:  ViewerRelationship{IsSubscribed: true},
			want: true,
		},
		{
			name: "purchased followers-only post visible without follow on sfw content",
			post: Post{CreatorID: creator, Visibility: VisibilityFollowers, UnlockPrice: 25},
			rel:  ViewerRelationship{IsPurchased: true, IsFollowing: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(&tt.post, viewer, tt.rel))
		})
	}
}

func TestCanView_UnpaidUnlockIsAbsolute(t *testing.T) {
	// With a price set and no purchase, no combination of other flags opens
	// the post for a non-owner.
	post := Post{CreatorID: "creator-1", UnlockPrice: 10}
	for _, vis := range []PostVisibility{VisibilityPublic, VisibilityFollowers, VisibilitySubscribers} {
		for _, nsfw := range []bool{false, true} {
			post.Visibility = vis
			post.IsNSFW = nsfw
			rel := ViewerRelationship{IsFollowing: true, IsSubscribed: true}
			assert.False(t, CanView(&post, "viewer-1", rel),
				"visibility=%s nsfw=%v should be locked without purchase", vis, nsfw)
		}
	}
}

func TestCanView_OwnerUnconditional(t *testing.T) {
	post := Post{CreatorID: "creator-1", Visibility: VisibilitySubscribers, IsNSFW: true, UnlockPrice: 999}
	assert.True(t, CanView(&post, "creator-1", ViewerRelationship{}))
}

func TestLockReason(t *testing.T) {
	creator := "creator-1"

	tests := []struct {
		name string
		post Post
		rel  ViewerRelationship
		want string
	}{
		{
			name: "viewable post has no reason",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic},
			want: "",
		},
		{
			name: "unpaid unlock",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, UnlockPrice: 10},
			want: LockPurchaseRequired,
		},
		{
			name: "nsfw without subscription",
			post: Post{CreatorID: creator, Visibility: VisibilityPublic, IsNSFW: true},
			want: LockSubscriptionRequired,
		},
		{
			name: "subscribers-only without subscription",
			post: Post{CreatorID: creator, Visibility: VisibilitySubscribers},
			want: LockSubscriptionRequired,
		},
		{
			name: "followers-only stranger",
			post: Post{CreatorID: creator, Visibility: VisibilityFollowers},
			want: LockFollowRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockReason(&tt.post, "viewer-1", tt.rel))
		})
	}
}
