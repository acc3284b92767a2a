package domain

import (
	"sync"
	"time"
)

// Role distinguishes ordinary customers from administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Customer represents a registered user. The identity layer that verifies
// callers lives outside this core; customers here are the opaque identities
// it hands us, plus the profile fields the registry maintains.
type Customer struct {
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	Role      Role
	CreatedAt time.Time
	Mu        sync.Mutex // guards Phone and Address
}

// IsAdmin reports whether the customer holds the administrator role.
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// ProfileSnapshot reads the mutable profile fields under the lock.
func (c *Customer) ProfileSnapshot() (phone, address string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.Phone, c.Address
}
