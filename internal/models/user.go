// Package models contains data structures for the application's domain models.
package models

import (
	"slices"
	"time"
)

// User is a user record together with its relationship state.
// Friends, IncomingRequests and OutgoingRequests are only changed through
// the relationship engine, which always writes both sides of an edge.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	AvatarRef   string    `json:"avatar_ref"`
	Level       int       `gorm:"not null" json:"level"`
	PublicCode  string    `gorm:"not null" json:"public_code"`
	CodeKey     string    `gorm:"uniqueIndex:idx_users_code_key;not null" json:"-"`
	Version     uint      `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Friends          []Friend          `gorm:"foreignKey:UserID" json:"friends"`
	IncomingRequests []IncomingRequest `gorm:"foreignKey:UserID" json:"incoming_requests"`
	OutgoingRequests []OutgoingRequest `gorm:"foreignKey:UserID" json:"outgoing_requests"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Friend is one direction of a friend edge, owned by UserID.
type Friend struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "user_friends"
}

// IncomingRequest is a pending request received by UserID from FromID.
type IncomingRequest struct {
	UserID uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	FromID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"from"`
	SentAt time.Time `gorm:"not null" json:"sent_at"`
}

// TableName specifies the table name for GORM
func (IncomingRequest) TableName() string {
	return "user_incoming_requests"
}

// OutgoingRequest is a pending request sent by UserID to TargetID.
type OutgoingRequest struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	TargetID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (OutgoingRequest) TableName() string {
	return "user_outgoing_requests"
}

// HasFriend reports whether id is in the user's friend set.
func (u *User) HasFriend(id uint) bool {
	return slices.ContainsFunc(u.Friends, func(f Friend) bool { return f.FriendID == id })
}

// HasIncomingFrom reports whether the user holds a pending request from id.
func (u *User) HasIncomingFrom(id uint) bool {
	return slices.ContainsFunc(u.IncomingRequests, func(r IncomingRequest) bool { return r.FromID == id })
}

// HasOutgoingTo reports whether the user has requested id.
func (u *User) HasOutgoingTo(id uint) bool {
	return slices.ContainsFunc(u.OutgoingRequests, func(r OutgoingRequest) bool { return r.TargetID == id })
}

// AddFriend adds id to the friend set. It is a no-op if already present.
func (u *User) AddFriend(id uint, at time.Time) {
	if u.HasFriend(id) {
		return
	}
	u.Friends = append(u.Friends, Friend{UserID: u.ID, FriendID: id, CreatedAt: at})
}

// AddIncoming appends a request from id. It is a no-op if one already exists.
func (u *User) AddIncoming(from uint, sentAt time.Time) {
	if u.HasIncomingFrom(from) {
		return
	}
	u.IncomingRequests = append(u.IncomingRequests, IncomingRequest{UserID: u.ID, FromID: from, SentAt: sentAt})
}

// AddOutgoing records a request to id. It is a no-op if already present.
func (u *User) AddOutgoing(target uint, at time.Time) {
	if u.HasOutgoingTo(target) {
		return
	}
	u.OutgoingRequests = append(u.OutgoingRequests, OutgoingRequest{UserID: u.ID, TargetID: target, CreatedAt: at})
}

// RemoveIncoming drops the request from id and reports whether one existed.
func (u *User) RemoveIncoming(from uint) bool {
	n := len(u.IncomingRequests)
	u.IncomingRequests = slices.DeleteFunc(u.IncomingRequests, func(r IncomingRequest) bool { return r.FromID == from })
	return len(u.IncomingRequests) != n
}

// RemoveOutgoing drops the request to id and reports whether one existed.
func (u *User) RemoveOutgoing(target uint) bool {
	n := len(u.OutgoingRequests)
	u.OutgoingRequests = slices.DeleteFunc(u.OutgoingRequests, func(r OutgoingRequest) bool { return r.TargetID == target })
	return len(u.OutgoingRequests) != n
}

// FriendIDs returns the friend ids in insertion order.
func (u *User) FriendIDs() []uint {
	ids := make([]uint, 0, len(u.Friends))
	for _, f := range u.Friends {
		ids = append(ids, f.FriendID)
	}
	return ids
}

// OutgoingIDs returns the ids the user has requested, in insertion order.
func (u *User) OutgoingIDs() []uint {
	ids := make([]uint, 0, len(u.OutgoingRequests))
	for _, r := range u.OutgoingRequests {
		ids = append(ids, r.TargetID)
	}
	return ids
}

// Summary returns the presentation attributes of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarRef:   u.AvatarRef,
		Level:       u.Level,
		PublicCode:  u.PublicCode,
	}
}

// Clone returns a deep copy of the user so callers can mutate it freely.
func (u *User) Clone() *User {
	c := *u
	c.Friends = slices.Clone(u.Friends)
	c.IncomingRequests = slices.Clone(u.IncomingRequests)
	c.OutgoingRequests = slices.Clone(u.OutgoingRequests)
	return &c
}
