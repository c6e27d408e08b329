package scheduler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignPayload generates an HMAC-SHA256 signature over a callback payload.
// The signed string is {timestamp}.{callback_id}.{json_body}, which lets the
// receiver verify the timestamp against replay, the ID for deduplication, and
// the full payload integrity. Format: "sha256=<hex_signature>".
func SignPayload(secret string, timestamp int64, callbackID string, body []byte) string {
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, callbackID, string(body))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))

	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}

// VerifyPayload checks a received callback signature in constant time
func VerifyPayload(secret string, timestamp int64, callbackID string, body []byte, signature string) bool {
	expected := SignPayload(secret, timestamp, callbackID, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
