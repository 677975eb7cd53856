package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"farm2home/db"
	"farm2home/globals"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// GenerateQRPayload signs an order reference for receipt QR codes:
// orderID|consumerID|timestamp|signature.
func GenerateQRPayload(orderID, consumerID string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, consumerID, time.Now().Unix())

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks the signature and returns the embedded order id.
func VerifyQRPayload(payload string) (string, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", fmt.Errorf("malformed payload")
	}
	data := strings.Join(parts[:3], "|")

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(parts[3]), []byte(want)) {
		return "", fmt.Errorf("invalid signature")
	}
	return parts[0], nil
}

// PrintReceipt renders a PDF receipt for one of the caller's orders, with a
// signed QR code a farmer can scan at handover.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	orderID := ps.ByName("orderid")

	order, err := fetchOrder(ctx, bson.M{"orderId": orderID, "consumerid": userID})
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(GenerateQRPayload(order.OrderID, order.ConsumerID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Produce: %s", order.ProduceName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Quantity: %d", order.Quantity))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %.2f", order.TotalPrice))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2 Jan 2006 15:04")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("PrintReceipt pdf error:", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// VerifyReceipt lets a farmer confirm a scanned QR payload belongs to one of
// their orders.
func VerifyReceipt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payload := r.URL.Query().Get("payload")
	orderID, err := VerifyQRPayload(payload)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"valid": false, "error": err.Error()})
		return
	}

	count, err := db.OrderCollection.CountDocuments(ctx, bson.M{"orderId": orderID, "farmerid": userID})
	if err != nil || count == 0 {
		utils.RespondWithJSON(w, http.StatusNotFound, utils.M{"valid": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "orderId": orderID})
}
