package globals

import (
	"context"
	"log"
	"os"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

// LoadSecrets re-reads JWT_SECRET after godotenv has populated the
// environment and aborts startup when it is still missing.
func LoadSecrets() {
	if len(JwtSecret) == 0 {
		JwtSecret = []byte(os.Getenv("JWT_SECRET"))
	}
	if len(JwtSecret) == 0 {
		log.Fatal("JWT_SECRET must be set")
	}
}
