package authUtils

import (
	"fmt"
	"log"
	"os"
)

// SendPasswordResetLink dispatches the reset link for an email address. The
// link always targets the fixed /reset-password page of the frontend. There
// is no SMTP relay wired in this deployment, so the dispatcher logs the link;
// swapping the body of this function for a real mail call is the extension
// point.
func SendPasswordResetLink(email, token string) error {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", base, token)
	log.Printf("Password reset link for %s: %s", email, link)
	return nil
}
