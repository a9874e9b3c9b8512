package service

import "time"

// Session identifies one signed-in browser session.
type Session struct {
	UserID    int
	SessionID string // jti of the session token
}

type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileUpdate carries the editable profile fields; empty fields are left untouched.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
	Photo    string
}

// LogFilter narrows the activity log of one account.
type LogFilter struct {
	UserID int
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Type   string    // any case; empty means all types
	Limit  int       // 0 means the default page size
}
