package admin

import "time"

const RoleAdmin = "admin"

// Principal is the verified identity behind an admin token.
type Principal struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
