package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runVerify(ctx context.Context) error {
	c.io.Println("=== Email Verification ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	firstName, err := c.io.ReadInput("First name: ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	lastName, err := c.io.ReadInput("Last name: ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	password, err := c.io.ReadPassword("Password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	// Подтверждение пароля
	confirmPassword, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Requesting verification code...")

	ticket, err := c.session.Verify(ctx, email, password, firstName, lastName)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ %s\n", ticket.Message)
	c.io.Println("Check your inbox, then run 'mediafeed register' with the code.")

	return nil
}

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	otp, err := c.io.ReadInput("Verification code: ")
	if err != nil {
		return fmt.Errorf("failed to read verification code: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering user...")

	profile, err := c.session.Register(ctx, email, otp)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", profile.ID)
	c.io.Printf("Welcome, %s\n", profile.DisplayName())

	return nil
}
