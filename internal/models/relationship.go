package models

import "time"

// RelationshipStatus describes a pair from the point of view of one user.
type RelationshipStatus string

const (
	// RelationshipNone means no edge exists between the two users.
	RelationshipNone RelationshipStatus = "none"
	// RelationshipPendingSent means the viewer requested the other user.
	RelationshipPendingSent RelationshipStatus = "pending_sent"
	// RelationshipPendingReceived means the other user requested the viewer.
	RelationshipPendingReceived RelationshipStatus = "pending_received"
	// RelationshipFriends means the two users are friends.
	RelationshipFriends RelationshipStatus = "friends"
)

// RequestStatus is the lookup annotation for a search candidate.
type RequestStatus string

const (
	RequestStatusNone     RequestStatus = "none"
	RequestStatusSent     RequestStatus = "sent"
	RequestStatusReceived RequestStatus = "received"
)

// UserSummary holds the presentation attributes of a user.
type UserSummary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref"`
	Level       int    `json:"level"`
	PublicCode  string `json:"public_code"`
}

// CandidateView is a lookup result annotated with the caller's relationship to it.
type CandidateView struct {
	UserSummary
	IsFriend      bool          `json:"is_friend"`
	RequestStatus RequestStatus `json:"request_status"`
}

// PendingRequestView is an incoming request with the sender's profile resolved.
type PendingRequestView struct {
	From   UserSummary `json:"from"`
	SentAt time.Time   `json:"sent_at"`
}

// RelationshipResult is returned by every relationship transition.
type RelationshipResult struct {
	UserID  uint               `json:"user_id"`
	OtherID uint               `json:"other_id"`
	Status  RelationshipStatus `json:"status"`
}
