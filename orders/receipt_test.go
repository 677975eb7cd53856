package orders

import (
	"strings"
	"testing"

	"farm2home/globals"
)

func init() {
	globals.JwtSecret = []byte("test-secret")
}

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := GenerateQRPayload("ORD123", "u1")

	orderID, err := VerifyQRPayload(payload)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if orderID != "ORD123" {
		t.Fatalf("expected ORD123, got %s", orderID)
	}
}

func TestQRPayloadTamperDetected(t *testing.T) {
	payload := GenerateQRPayload("ORD123", "u1")
	tampered := strings.Replace(payload, "ORD123", "ORD999", 1)

	if _, err := VerifyQRPayload(tampered); err == nil {
		t.Fatal("expected tampered payload to fail verification")
	}
}

func TestQRPayloadMalformed(t *testing.T) {
	for _, payload := range []string{"", "just-one-part", "a|b|c"} {
		if _, err := VerifyQRPayload(payload); err == nil {
			t.Fatalf("expected malformed payload %q to fail", payload)
		}
	}
}
