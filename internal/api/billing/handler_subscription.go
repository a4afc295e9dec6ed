package billing

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"

	"ordopro-backend/config"
	"ordopro-backend/database"
	"ordopro-backend/internal/domain/billing"
	"ordopro-backend/internal/domain/users"
	stripeinfra "ordopro-backend/internal/infra/stripe"
)

type checkoutInput struct {
	// "monthly" (default) or "annual".
	Interval string `json:"interval"`
}

// POST /api/v1/subscription — opens a Stripe Checkout session for the
// essential plan. The session carries user_id in its metadata; the webhook
// uses it to attach the subscription when checkout completes.
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = config.STRIPE_API_KEY

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var product billing.StripeProduct
	if err := database.DB.Where("name = ?", config.ESSENTIAL_PLAN_NAME).First(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan is not configured"})
		return
	}

	priceID := product.MonthlyPriceID
	if input.Interval == "annual" {
		priceID = product.AnnualPriceID
	}
	if priceID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan is not configured"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL:    stripe.String(config.APP_URL + "/subscription/success"),
		CancelURL:     stripe.String(config.APP_URL + "/subscription/cancel"),
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(user.Email),
		Currency:      stripe.String(string(stripe.CurrencyEUR)),

		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),
	}
	params.AddMetadata("user_id", fmt.Sprint(user.ID))
	params.AddMetadata("product_name", product.Name)

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessionId": s.ID, "checkout_url": s.URL})
}

// GET /api/v1/subscription — the caller's own subscription, if any.
func GetSubscription(c *gin.Context) {
	var sub billing.Subscription
	err := database.DB.Where("user_id = ?", c.GetUint("user_id")).First(&sub).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription"})
		return
	}

	status := ""
	if sub.Status != nil {
		status = *sub.Status
	}

	payload := map[string]interface{}{
		"id":                     sub.ID,
		"stripe_subscription_id": sub.StripeSubscriptionID,
		"status":                 sub.Status,
		"entitled":               sub.Active || stripeinfra.IsEntitling(status),
		"payment_status":         sub.PaymentStatus,
		"product_name":           sub.ProductName,
		"active":                 sub.Active,
		"current_period_start":   sub.CurrentPeriodStart,
		"current_period_end":     sub.CurrentPeriodEnd,
		"cancel_at_period_end":   sub.CancelAtPeriodEnd,
		"trial_end":              sub.TrialEnd,
		"hosted_invoice_url":     sub.HostedInvoiceURL,
		"invoice_pdf":            sub.InvoicePDF,
	}
	if sub.TotalPrice.Valid {
		payload["total_price"] = sub.TotalPrice.Decimal.StringFixed(2)
	} else {
		payload["total_price"] = nil
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/v1/subscription/success and /cancel — landing targets for the
// Checkout redirect URLs.
func CheckoutSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func CheckoutCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// POST /api/v1/billing-portal — Stripe-hosted subscription management.
func CreateBillingPortal(c *gin.Context) {
	stripe.Key = config.STRIPE_API_KEY

	var cust billing.CustomerDetail
	err := database.DB.Where("user_id = ?", c.GetUint("user_id")).First(&cust).Error
	if err != nil || cust.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(cust.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/account"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
