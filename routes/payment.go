package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/satenderkumar11/BuzzBasket/controllers/payment"
)

// SetupPaymentRoutes registers the payment gateway passthrough endpoints.
func SetupPaymentRoutes(r *gin.Engine) {
	payment := r.Group("/payment")
	{
		payment.POST("", paymentControllers.CreatePayment())
		payment.POST("/verify", paymentControllers.VerifyPayment())
	}
}
