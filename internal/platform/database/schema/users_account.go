package schema

import "strings"

// UserAccountTable describes users.account. Username and email are unique
// case-insensitively through LOWER() indexes.
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	AvatarURL    string
	IsBanned     string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is users.account.
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	DisplayName:  "displayname",
	AvatarURL:    "avatarurl",
	IsBanned:     "isbanned",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Select lists every column in scan order with the id cast to text.
func (t UserAccountTable) Select() string {
	return strings.Join([]string{
		t.ID + "::text", t.Username, t.Email, t.PasswordHash,
		t.DisplayName, t.AvatarURL, t.Role, t.CreatedAt, t.UpdatedAt,
	}, ", ")
}
