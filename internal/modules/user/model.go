// README: User account record.
package user

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`

	// PasswordHash never leaves the module boundary in a response.
	PasswordHash string `json:"-"`
}
