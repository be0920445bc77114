package entity

// ViewerRelationship is everything the visibility rules need to know about a
// viewer relative to a post's creator. It is computed per request from the
// follows, subscriptions and purchases tables and never cached across
// requests, so a lapsed subscription or a revoked follow takes effect on the
// very next read.
type ViewerRelationship struct {
	IsOwner      bool
	IsFollowing  bool
	IsSubscribed bool
	IsPurchased  bool
}

// Lock reasons reported to clients alongside can_view=false.
const (
	LockPurchaseRequired     = "purchase_required"
	LockSubscriptionRequired = "subscription_required"
	LockFollowRequired       = "follow_required"
)

// CanView decides whether a viewer may see a post's content.
//
// The rules are evaluated in a fixed priority order and the first match wins.
// The order is policy, not an implementation detail: a paid unlock gates
// everything else even for subscribers, and a purchase alone never bypasses
// the NSFW-requires-subscription rule. Do not reorder.
func CanView(post *Post, viewerID string, rel ViewerRelationship) bool {
	// 1. Owners always see their own content.
	if post.CreatorID == viewerID {
		return true
	}
	// 2. Free, safe, public posts are visible to everyone.
	if post.Visibility == VisibilityPublic && !post.IsNSFW && post.UnlockPrice == 0 {
		return true
	}
	// 3. Unpaid unlocks are locked regardless of any other relationship.
	if post.UnlockPrice > 0 && !rel.IsPurchased {
		return false
	}
	// 4. NSFW always requires an active subscription, whatever the visibility.
	if post.IsNSFW && !rel.IsSubscribed {
		return false
	}
	// 5. Subscriber-only posts.
	if post.Visibility == VisibilitySubscribers && !rel.IsSubscribed {
		return false
	}
	// 6. Follower posts; a subscriber satisfies the weaker gate.
	if post.Visibility == VisibilityFollowers && !(rel.IsFollowing || rel.IsSubscribed) {
		return false
	}
	return true
}

// LockReason explains why CanView returned false, in the same priority order.
// Returns "" when the post is viewable.
func LockReason(post *Post, viewerID string, rel ViewerRelationship) string {
	if CanView(post, viewerID, rel) {
		return ""
	}
	if post.UnlockPrice > 0 && !rel.IsPurchased {
		return LockPurchaseRequired
	}
	if post.IsNSFW && !rel.IsSubscribed {
		return LockSubscriptionRequired
	}
	if post.Visibility == VisibilitySubscribers && !rel.IsSubscribed {
		return LockSubscriptionRequired
	}
	return LockFollowRequired
}
