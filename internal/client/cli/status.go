package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/mediafeed/internal/client/auth"
	"github.com/iudanet/mediafeed/internal/client/session"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	if c.session.State() != session.StateAuthenticated {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'mediafeed login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if user := c.session.User(); user != nil {
		c.io.Printf("User: %s <%s>\n", user.DisplayName(), user.Email)
	}

	creds, err := c.tokens.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}

	if creds.IssuedAt.IsZero() {
		c.io.Println("Access token: none, it will be refreshed on next use")
		return nil
	}

	c.io.Printf("Access token issued: %s\n", creds.IssuedAt.Format(time.RFC3339))
	c.io.Printf("Access token expires: %s\n", creds.ExpiresAt.Format(time.RFC3339))
	if remaining := time.Until(creds.ExpiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Access token has expired, it will be refreshed on next use.")
	}

	// Claims только для информации, подпись не проверяется
	if claims, err := auth.InspectAccessToken(creds.AccessToken); err == nil {
		if claims.Subject != "" {
			c.io.Printf("Token subject: %s\n", claims.Subject)
		}
		if claims.Issuer != "" {
			c.io.Printf("Token issuer: %s\n", claims.Issuer)
		}
	}

	return nil
}
