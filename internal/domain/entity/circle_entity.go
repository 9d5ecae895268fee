package entity

import "time"

// Circle is a named group of users sharing daily results.
// InviteCode is immutable once the circle exists.
type Circle struct {
	ID         string
	Name       string
	InviteCode string
	CreatorID  string
	CreatedAt  time.Time
}

// CircleSummary is the lightweight view used by circle listings.
type CircleSummary struct {
	ID   string
	Name string
}

// Membership links a user to a circle. (UserID, CircleID) is unique.
type Membership struct {
	ID       string
	UserID   string
	CircleID string
}

// MemberScore is a circle member joined against a single day's score.
// Guesses and RawResult are nil when the member has not submitted.
type MemberScore struct {
	UserID    string
	Name      string
	Guesses   *int
	RawResult *string
}
