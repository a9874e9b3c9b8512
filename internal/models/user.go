package models

// DefaultPhoto is the profile photo of users who never uploaded one.
const DefaultPhoto = "default.png"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
	Photo        string `json:"photo"`
}
