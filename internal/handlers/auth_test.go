package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmuphysics/forum-backend/internal/apperr"
)

type fakeDispatcher struct {
	sentTo   []string
	checkErr error
}

func (f *fakeDispatcher) Send(ctx context.Context, email string) error {
	f.sentTo = append(f.sentTo, email)
	return nil
}

func (f *fakeDispatcher) Check(ctx context.Context, email, code string) error {
	return f.checkErr
}

func loginRouter(codes *fakeDispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil, codes)
	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/verify", h.Verify)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"PHY1234567@xmu.edu.my", true},
		{"phy1234567@xmu.edu.my", true}, // case-insensitive
		{"PHY1234567@XMU.EDU.MY", true},
		{"phy123@xmu.edu.my", false},         // wrong digit count
		{"PHY12345678@xmu.edu.my", false},    // too many digits
		{"PHY1234567@gmail.com", false},      // wrong domain
		{"MAT1234567@xmu.edu.my", false},     // wrong program
		{"PHY1234567@xmu.edu.my.evil", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, emailPattern.MatchString(tt.email), "email %q", tt.email)
	}
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	codes := &fakeDispatcher{}
	r := loginRouter(codes)

	w := postJSON(t, r, "/api/auth/login", gin.H{"email": "phy123@xmu.edu.my"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")
	assert.Empty(t, codes.sentTo, "no passcode dispatched for an invalid email")
}

func TestLoginRequiresEmail(t *testing.T) {
	codes := &fakeDispatcher{}
	r := loginRouter(codes)

	w := postJSON(t, r, "/api/auth/login", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, codes.sentTo)
}

func TestLoginDispatchesPasscode(t *testing.T) {
	codes := &fakeDispatcher{}
	r := loginRouter(codes)

	w := postJSON(t, r, "/api/auth/login", gin.H{"email": "PHY1234567@xmu.edu.my"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
	require.Len(t, codes.sentTo, 1)
	assert.Equal(t, "phy1234567@xmu.edu.my", codes.sentTo[0], "email normalized to lower case")
}

func TestVerifyRejectsBadPasscode(t *testing.T) {
	codes := &fakeDispatcher{checkErr: apperr.Auth("Invalid or expired passcode.")}
	r := loginRouter(codes)

	w := postJSON(t, r, "/api/auth/verify", gin.H{"email": "PHY1234567@xmu.edu.my", "code": "000000"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired passcode.")
}

func TestVerifyRejectsMalformedEmail(t *testing.T) {
	codes := &fakeDispatcher{}
	r := loginRouter(codes)

	w := postJSON(t, r, "/api/auth/verify", gin.H{"email": "someone@gmail.com", "code": "123456"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
