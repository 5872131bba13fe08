package paymentControllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultAPIVersion = "2023-08-01"

// gatewayConfig reads the Cashfree credentials per request, so the sandbox
// and production switch is purely environmental.
func gatewayConfig() (baseURL, clientID, clientSecret, apiVersion string, err error) {
	baseURL = os.Getenv("CASHFREE_API_URL")
	if baseURL == "" {
		baseURL = "https://sandbox.cashfree.com/pg"
	}
	clientID = os.Getenv("CASHFREE_CLIENT_ID")
	clientSecret = os.Getenv("CASHFREE_CLIENT_SECRET")
	apiVersion = os.Getenv("CASHFREE_API_VERSION")
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}

	if clientID == "" || clientSecret == "" {
		return "", "", "", "", fmt.Errorf("cashfree configuration missing")
	}
	return baseURL, clientID, clientSecret, apiVersion, nil
}

// gatewayRequest forwards one call to Cashfree and hands back the gateway's
// status code and body verbatim.
func gatewayRequest(method, path string, body []byte) (int, []byte, error) {
	baseURL, clientID, clientSecret, apiVersion, err := gatewayConfig()
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-client-id", clientID)
	req.Header.Set("x-client-secret", clientSecret)
	req.Header.Set("x-api-version", apiVersion)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read gateway response: %v", err)
	}
	return resp.StatusCode, respBody, nil
}

// POST /payment
//
// Pure passthrough: the request body is forwarded unmodified to Cashfree's
// order-creation API and the gateway response is returned as-is. Nothing is
// persisted locally.
func CreatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil || len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order data is required."})
			return
		}

		status, respBody, err := gatewayRequest(http.MethodPost, "/orders", body)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.Data(status, "application/json", respBody)
	}
}

type VerifyPaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// POST /payment/verify
//
// Fetches the gateway's payment records for an order. The result is not
// persisted; the frontend decides whether to proceed to order creation.
func VerifyPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId is required."})
			return
		}

		status, respBody, err := gatewayRequest(http.MethodGet, "/orders/"+req.OrderID+"/payments", nil)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.Data(status, "application/json", respBody)
	}
}
