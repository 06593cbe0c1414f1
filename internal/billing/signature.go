package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// RazorpaySignature computes the hex HMAC-SHA256 of "orderID|paymentID".
func RazorpaySignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRazorpaySignature compares in constant time.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := RazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
