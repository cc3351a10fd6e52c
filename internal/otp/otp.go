// Package otp issues and checks the one-time passcodes behind the
// passwordless login flow. Dispatch goes through Twilio Verify's email
// channel when a Verify service is configured; otherwise a local generator
// keeps bcrypt-hashed codes in redis with a short TTL and logs the code in
// place of delivery.
package otp

import "context"

// Dispatcher sends a passcode to an email address and later checks the code
// the user typed back.
type Dispatcher interface {
	Send(ctx context.Context, email string) error
	Check(ctx context.Context, email, code string) error
}
