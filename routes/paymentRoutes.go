package routes

import (
	"cityfix-be/middlewares"
	"cityfix-be/models"

	"github.com/gin-gonic/gin"
)

// PaymentRoutes sets up checkout, the confirmation callbacks and the read-only
// aggregates built on the payment ledger.
func PaymentRoutes(r *gin.Engine, d Deps) {
	checkout := middlewares.NewCheckoutLimiter(d.Config.CheckoutPerMin).Middleware()

	r.POST("/create-checkout-session", checkout, d.Payments.CreateCheckoutSession)
	r.POST("/premium-checkout-session", checkout, d.Payments.CreatePremiumSession)

	r.PATCH("/payment-success", d.Payments.PaymentSuccess)
	// The misspelt path is what deployed clients call.
	r.PATCH("/premuim-success", d.Payments.PremiumSuccess)
	r.PATCH("/premium-success", d.Payments.PremiumSuccess)

	r.GET("/payments", d.verify(), d.resolveRole(), d.Payments.GetPayments)
	r.GET("/latestPayments", d.verify(), d.require(models.RoleAdmin), d.Payments.GetLatestPayments)

	r.GET("/dashboard/stats", d.verify(), d.Dashboard.CitizenStats)
	r.GET("/staffDashboard/stats", d.verify(), d.require(models.RoleStaff), d.Dashboard.StaffStats)
	r.GET("/adminDashboard/stats", d.verify(), d.require(models.RoleAdmin), d.Dashboard.AdminStats)
}
