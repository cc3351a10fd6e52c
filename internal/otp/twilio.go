package otp

import (
	"context"
	"os"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/xmuphysics/forum-backend/internal/apperr"
)

// TwilioVerify dispatches passcodes through a Twilio Verify service's email
// channel. The code itself lives at Twilio; we never see or store it.
type TwilioVerify struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioVerify reads TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN from the
// environment (twilio-go does this itself) plus TWILIO_VERIFY_SERVICE_SID.
func NewTwilioVerify() *TwilioVerify {
	return &TwilioVerify{
		client:     twilio.NewRestClient(),
		serviceSID: os.Getenv("TWILIO_VERIFY_SERVICE_SID"),
	}
}

func (t *TwilioVerify) Send(ctx context.Context, email string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(email)
	params.SetChannel("email")

	if _, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params); err != nil {
		return apperr.Storage(err, "Failed to send passcode.")
	}
	return nil
}

func (t *TwilioVerify) Check(ctx context.Context, email, code string) error {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(email)
	params.SetCode(code)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return apperr.Storage(err, "Failed to check passcode.")
	}
	if resp.Status == nil || *resp.Status != "approved" {
		return apperr.Auth("Invalid or expired passcode.")
	}
	return nil
}
