package entity

// PostView is a post as seen by one viewer. Locked posts keep their metadata
// but media fields are blanked before this struct leaves the usecase.
type PostView struct {
	Post
	CanView      bool   `json:"can_view"`
	LockedReason string `json:"locked_reason,omitempty"`
}
