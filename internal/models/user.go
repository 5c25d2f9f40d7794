package models

// User is a registered account. ImageURL and Bio are optional and render
// as JSON null when unset.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"` // don’t expose hash
	ImageURL     *string `json:"image_url"`
	Bio          *string `json:"bio"`
}
