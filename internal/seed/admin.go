package seed

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin provisions a bootstrap admin account if none exists under the
// given username. An empty password falls back to the well-known development
// default, which is logged loudly so it never ships unnoticed.
func EnsureAdmin(db *sqlx.DB, username, password string) {
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
		log.Printf("WARNING: seeding admin %q with the default password; set ADMIN_PASSWORD before exposing this server", username)
	}

	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username); err != nil {
		log.Printf("unable to check for existing admin: %v", err)
		return
	}
	if exists {
		log.Printf("admin user %q already exists", username)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("unable to hash admin password: %v", err)
		return
	}
	if _, err := db.Exec(`INSERT INTO users (username, password, role) VALUES ($1, $2, 'admin')`, username, hashed); err != nil {
		log.Printf("unable to seed admin user: %v", err)
		return
	}
	log.Printf("seeded admin user %q", username)
}
