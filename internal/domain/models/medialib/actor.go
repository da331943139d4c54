package medialib

// Actor is the identity attached to audit fields on mutating calls.
// The system actor is provisioned idempotently (get-or-create) rather than
// looked up through hidden global state.
type Actor struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	IsActive bool   `json:"isActive" db:"is_active"`
}
