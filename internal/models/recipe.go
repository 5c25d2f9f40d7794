package models

// Recipe belongs to exactly one user. Responses carry the owner as a
// nested projection instead of exposing the raw user_id column.
type Recipe struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Instructions      string       `json:"instructions"`
	MinutesToComplete *int         `json:"minutes_to_complete"`
	UserID            int          `json:"-"`
	User              *RecipeOwner `json:"user"`
}

// RecipeOwner is the public projection of a recipe's owner. Every field
// is a pointer so an unresolvable owner serializes as all-null values
// rather than being omitted.
type RecipeOwner struct {
	ID       *int    `json:"id"`
	Username *string `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

// OwnerOf builds the owner projection for u. A nil user yields the
// all-null projection.
func OwnerOf(u *User) *RecipeOwner {
	if u == nil {
		return &RecipeOwner{}
	}
	return &RecipeOwner{
		ID:       &u.ID,
		Username: &u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}
