package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/xmuphysics/forum-backend/internal/apperr"
)

const codeTTL = 10 * time.Minute

// RedisCodes is the local fallback dispatcher: it generates a six-digit code,
// stores its bcrypt hash in redis under the email with a TTL, and logs the
// code where a mail sender would go.
type RedisCodes struct {
	rdb *redis.Client
}

func NewRedisCodes(addr string) *RedisCodes {
	return &RedisCodes{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func codeKey(email string) string {
	return "otp:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (r *RedisCodes) Send(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return apperr.Storage(err, "Failed to send passcode.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Storage(err, "Failed to send passcode.")
	}

	if err := r.rdb.Set(ctx, codeKey(email), hash, codeTTL).Err(); err != nil {
		return apperr.Storage(err, "Failed to send passcode.")
	}

	// Delivery stub: a real deployment swaps this log line for a mail sender.
	log.Printf("[otp] passcode for %s: %s", email, code)
	return nil
}

func (r *RedisCodes) Check(ctx context.Context, email, code string) error {
	hash, err := r.rdb.Get(ctx, codeKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return apperr.Auth("Invalid or expired passcode.")
	}
	if err != nil {
		return apperr.Storage(err, "Failed to check passcode.")
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return apperr.Auth("Invalid or expired passcode.")
	}

	// Single use.
	if err := r.rdb.Del(ctx, codeKey(email)).Err(); err != nil {
		log.Printf("failed to clear used passcode for %s: %v", email, err)
	}
	return nil
}
