package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/models"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func createTestCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Product) {
	category := models.Category{Name: "Electronics"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:        "Bluetooth Speaker",
		Description: "Portable speaker",
		Price:       100,
		Stock:       25,
		CategoryID:  category.ID,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &category, &product
}

func orderPayload(product *models.Product, total float64) gin.H {
	return gin.H{
		"customer_name":    "Ravi Kumar",
		"customer_phone":   "9876543210",
		"customer_email":   "ravi@example.com",
		"shipping_address": "12 MG Road, Hyderabad",
		"total_amount":     total,
		"shipping_charge":  50,
		"items": []gin.H{
			{"product_id": product.ID, "quantity": 2, "price": 100},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	r, db := newTestRouter(t)
	_, product := createTestCatalog(t, db)

	// 2 x 100 + 50 shipping = 250
	w := postJSON(t, r, "/api/orders", orderPayload(product, 250))
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, float64(100), order.Items[0].Price)

	// Ordering does not reserve stock.
	var fresh models.Product
	require.NoError(t, db.Where("id = ?", product.ID).First(&fresh).Error)
	assert.Equal(t, 25, fresh.Stock)
}

func TestCreateOrderTotalMismatch(t *testing.T) {
	r, db := newTestRouter(t)
	_, product := createTestCatalog(t, db)

	w := postJSON(t, r, "/api/orders", orderPayload(product, 249))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Total amount mismatch")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderTotalWithinTolerance(t *testing.T) {
	r, db := newTestRouter(t)
	_, product := createTestCatalog(t, db)

	w := postJSON(t, r, "/api/orders", orderPayload(product, 250.009))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/orders/00000000-0000-0000-0000-000000000001", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createTestOrder(t *testing.T, db *gorm.DB, paymentStatus string) *models.Order {
	order := models.Order{
		CustomerName:    "Ravi Kumar",
		CustomerPhone:   "9876543210",
		ShippingAddress: "12 MG Road, Hyderabad",
		TotalAmount:     250,
		ShippingCharge:  50,
		OrderStatus:     models.OrderStatusPending,
		PaymentStatus:   paymentStatus,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func uploadProof(t *testing.T, r *gin.Engine, orderID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", "proof.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("utr_number", "UTR1234567890"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID+"/payment-proof", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func chdirTemp(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestUploadPaymentProof(t *testing.T) {
	chdirTemp(t)
	r, db := newTestRouter(t)
	order := createTestOrder(t, db, models.PaymentStatusPending)

	w := uploadProof(t, r, order.ID.String())
	assert.Equal(t, http.StatusCreated, w.Code)

	var proof models.PaymentProof
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&proof).Error)
	assert.Equal(t, "UTR1234567890", proof.UTRNumber)
	assert.NotEmpty(t, proof.ImagePath)

	// Upload flips the order to verified without any amount check.
	var updated models.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&updated).Error)
	assert.Equal(t, models.PaymentStatusVerified, updated.PaymentStatus)
}

func TestUploadPaymentProofAlreadyVerified(t *testing.T) {
	chdirTemp(t)
	r, db := newTestRouter(t)
	order := createTestOrder(t, db, models.PaymentStatusVerified)

	w := uploadProof(t, r, order.ID.String())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment already verified")
}

func TestUploadPaymentProofMissingImage(t *testing.T) {
	r, db := newTestRouter(t)
	order := createTestOrder(t, db, models.PaymentStatusPending)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("utr_number", "UTR1234567890"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+order.ID.String()+"/payment-proof", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment proof image is required.")
}

func TestListOrdersFilterByPaymentStatus(t *testing.T) {
	r, db := newTestRouter(t)
	createTestOrder(t, db, models.PaymentStatusPending)
	createTestOrder(t, db, models.PaymentStatusVerified)
	createTestOrder(t, db, models.PaymentStatusVerified)

	w := doJSON(t, r, http.MethodGet, "/api/orders?payment_status=verified", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
		Total  int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Orders, 2)
}
