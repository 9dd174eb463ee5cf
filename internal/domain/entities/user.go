package entities

import "time"

// Role separates customers from back-office admins. Admins bypass the
// submission quota and can read every estimate.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User is the persisted account record.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (email-index): email, for login lookups.
//
// Email verification: registration stores a one-shot VerificationToken;
// confirming it flips EmailVerified and clears the token. Google sign-in
// accounts are verified by construction and carry no password hash.
// Password reset works the same way through ResetToken: requesting a reset
// stores a one-shot token, consuming it replaces the password hash.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	PasswordHash      string    `json:"-"`
	Role              Role      `json:"role"`
	EmailVerified     bool      `json:"email_verified"`
	VerificationToken string    `json:"-"`
	ResetToken        string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
