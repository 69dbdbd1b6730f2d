package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/config"
	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type VerifyPaymentRequest struct {
	PaymentID string  `json:"payment_id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
}

type CreateRefundRequest struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"` // paisa
	Reason    string `json:"reason"`
}

// VerifyRazorpayPayment checks a payment against the Razorpay API and, when
// the payment is captured, flips the order's payment status.
func VerifyRazorpayPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.PaymentID == "" || req.OrderID == "" || req.Amount == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}

	rzpCfg := config.LoadRazorpayConfig()
	if rzpCfg.KeyID == "" || rzpCfg.KeySecret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Razorpay credentials not configured")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	verifyURL := fmt.Sprintf("%s/payments/%s", rzpCfg.BaseURL, req.PaymentID)
	httpReq, err := http.NewRequest(http.MethodGet, verifyURL, nil)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create verification request.")
		return
	}
	httpReq.SetBasicAuth(rzpCfg.KeyID, rzpCfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to verify payment with Razorpay")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to verify payment with Razorpay")
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to read Razorpay response.")
		return
	}

	var paymentData map[string]interface{}
	if err := json.Unmarshal(body, &paymentData); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to parse Razorpay response.")
		return
	}

	if paymentData["status"] != "captured" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment not captured")
		return
	}

	var order models.Order
	if err := gormDB.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	order.PaymentStatus = models.PaymentStatusVerified
	if err := gormDB.Save(&order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update order.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment verified successfully",
		"payment_details": gin.H{
			"payment_id": paymentData["id"],
			"amount":     paymentData["amount"],
			"currency":   paymentData["currency"],
			"status":     paymentData["status"],
		},
	})
}

func CreateRazorpayRefund(c *gin.Context) {
	var req CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.PaymentID == "" || req.Amount == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment ID and amount required")
		return
	}

	rzpCfg := config.LoadRazorpayConfig()
	if rzpCfg.KeyID == "" || rzpCfg.KeySecret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Razorpay credentials not configured")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Customer request"
	}

	refundPayload := map[string]interface{}{
		"amount": req.Amount,
		"notes": map[string]string{
			"reason": reason,
		},
	}

	jsonBody, err := json.Marshal(refundPayload)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to prepare refund request.")
		return
	}

	refundURL := fmt.Sprintf("%s/payments/%s/refund", rzpCfg.BaseURL, req.PaymentID)
	httpReq, err := http.NewRequest(http.MethodPost, refundURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create refund request.")
		return
	}
	httpReq.SetBasicAuth(rzpCfg.KeyID, rzpCfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to create refund")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		helpers.RespondWithError(c, http.StatusBadRequest, "Failed to create refund")
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to read refund response.")
		return
	}

	var refundData map[string]interface{}
	if err := json.Unmarshal(body, &refundData); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to parse refund response.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Refund created successfully",
		"refund_details": refundData,
	})
}
