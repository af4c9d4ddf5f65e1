package paymentgateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign подпись колбэка шлюза: hex(HMAC-SHA256(secret, "order_id|payment_id"))
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature сравнивает подпись за постоянное время
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
