// Package auth implements the signed session cookie: a session identifier
// made tamper-evident with an HMAC under the process secret. The registry
// trusts any identifier it recognizes, so this signature is the only defense
// against forged session ids.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie used by the site.
const CookieName = "at.sid"

// CookieSigner seals session identifiers into cookie values of the form
// "<sessionID>.<hexHMAC>" and opens them back, rejecting anything whose
// signature does not recompute identically.
type CookieSigner struct {
	secret []byte
}

func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

// Seal returns the signed cookie value for sessionID.
func (s *CookieSigner) Seal(sessionID string) string {
	return sessionID + "." + s.sign(sessionID)
}

// Open validates a sealed value and returns the embedded session id.
// Malformed values, undecodable signatures, and mismatches all yield
// ("", false); the comparison is constant-time.
func (s *CookieSigner) Open(token string) (string, bool) {
	sessionID, sigHex, ok := strings.Cut(token, ".")
	if !ok || sessionID == "" || sigHex == "" {
		return "", false
	}

	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return "", false
	}

	expected, err := hex.DecodeString(s.sign(sessionID))
	if err != nil {
		return "", false
	}
	if !hmac.Equal(sig, expected) {
		return "", false
	}

	return sessionID, true
}

// SessionCookie builds the Set-Cookie value carrying a sealed session id.
// The cookie is HTTP-only, site-wide, SameSite=Lax, and Secure in
// production.
func (s *CookieSigner) SessionCookie(sessionID string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.Seal(sessionID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(ttl.Seconds()),
	}
}

// ClearCookie builds an already-expired cookie that removes the session
// cookie from the client.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   -1,
	}
}

func (s *CookieSigner) sign(sessionID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}
