package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/middlewares"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/models"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/pricefeed"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/reports"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

type apiServer struct {
	registry   *cart.Registry
	dispatcher *pricefeed.Dispatcher
}

func newApiServer(registry *cart.Registry, dispatcher *pricefeed.Dispatcher) *apiServer {
	return &apiServer{registry: registry, dispatcher: dispatcher}
}

func (s *apiServer) registerRoutes(r *gin.Engine) {
	// Pub/Sub push delivery authenticates at the infrastructure level, not
	// with a user token.
	r.POST("/pubsub/price-feed", pricefeed.PushHandler(s.dispatcher))

	api := r.Group("/api", middlewares.RequireBusiness())

	api.POST("/cart/sessions", s.openSessionHandler)
	api.GET("/cart/sessions/:id", s.getSessionHandler)
	api.PATCH("/cart/sessions/:id", s.updateSessionHandler)
	api.DELETE("/cart/sessions/:id", s.closeSessionHandler)

	api.POST("/cart/sessions/:id/customer", s.setCustomerHandler)
	api.POST("/cart/sessions/:id/supplier", s.setSupplierHandler)

	api.POST("/cart/sessions/:id/products", s.toggleProductHandler)
	api.PUT("/cart/sessions/:id/products", s.replaceProductsHandler)
	api.DELETE("/cart/sessions/:id/products/:productId", s.removeProductHandler)
	api.PATCH("/cart/sessions/:id/lines/:productId", s.updateLineHandler)

	api.POST("/cart/sessions/:id/validate", s.validateSessionHandler)
	api.POST("/cart/sessions/:id/submit", s.submitSessionHandler)

	api.GET("/cart/notifications", s.notificationsHandler)

	api.POST("/customers", s.createCustomerHandler)

	api.GET("/invoices/:id", s.getInvoiceHandler)
	api.PUT("/invoices/:id", s.updateInvoiceHandler)
	api.GET("/invoices/:id/export", s.exportInvoiceHandler)
	api.GET("/purchase-orders/:id", s.getPurchaseOrderHandler)
	api.PUT("/purchase-orders/:id", s.updatePurchaseOrderHandler)
	api.GET("/purchase-orders/:id/export", s.exportPurchaseOrderHandler)

	api.POST("/price-updates", s.publishPriceUpdateHandler)
}

// session resolves the :id parameter into a session owned by the caller's
// business. Sessions of other businesses look like missing sessions.
func (s *apiServer) session(c *gin.Context) (*cart.Session, bool) {
	return s.sessionByID(c, c.Param("id"))
}

func (s *apiServer) sessionByID(c *gin.Context, id string) (*cart.Session, bool) {
	businessId, _ := utils.GetBusinessIdFromContext(c.Request.Context())
	session, err := s.registry.Get(id)
	if err != nil || session.BusinessID != businessId {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

func pathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return value, true
}

type sessionView struct {
	Id                   string             `json:"id"`
	Kind                 cart.OrderKind     `json:"kind"`
	Customer             *cart.Party        `json:"customer"`
	Supplier             *cart.Party        `json:"supplier"`
	SelectedIds          []int              `json:"selected_ids"`
	Lines                []cart.LineAmounts `json:"lines"`
	Totals               cart.OrderTotals   `json:"totals"`
	PaymentMethod        string             `json:"payment_method"`
	ContractNumber       string             `json:"contract_number"`
	IsPrintContract      bool               `json:"is_print_contract"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
}

func (s *apiServer) sessionViewOf(session *cart.Session) sessionView {
	return sessionView{
		Id:                   session.ID,
		Kind:                 session.Kind,
		Customer:             session.Customer(),
		Supplier:             session.Supplier(),
		SelectedIds:          session.SelectedIDs(),
		Lines:                session.Lines(),
		Totals:               session.Totals(),
		PaymentMethod:        session.PaymentMethod,
		ContractNumber:       session.ContractNumber,
		IsPrintContract:      session.IsPrintContract,
		ExpectedDeliveryDate: session.ExpectedDeliveryDate,
	}
}

type openSessionRequest struct {
	Kind cart.OrderKind `json:"kind" binding:"required"`
}

func (s *apiServer) openSessionHandler(c *gin.Context) {
	var input openSessionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}
	if input.Kind != cart.KindInvoice && input.Kind != cart.KindPurchaseOrder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be Invoice or PurchaseOrder"})
		return
	}

	businessId, _ := utils.GetBusinessIdFromContext(c.Request.Context())
	userId, _ := utils.GetUserIdFromContext(c.Request.Context())
	session := s.registry.Open(businessId, userId, input.Kind)
	c.JSON(http.StatusCreated, s.sessionViewOf(session))
}

func (s *apiServer) getSessionHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

type updateSessionRequest struct {
	PaymentMethod        *string          `json:"payment_method"`
	OtherExpenses        *decimal.Decimal `json:"other_expenses"`
	ContractNumber       *string          `json:"contract_number"`
	IsPrintContract      *bool            `json:"is_print_contract"`
	ExpectedDeliveryDate *string          `json:"expected_delivery_date"`
}

func (s *apiServer) updateSessionHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var input updateSessionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	if input.PaymentMethod != nil {
		session.SetPaymentMethod(*input.PaymentMethod)
	}
	if input.OtherExpenses != nil {
		if input.OtherExpenses.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "other_expenses cannot be negative"})
			return
		}
		session.SetOtherExpenses(*input.OtherExpenses)
	}
	if input.ContractNumber != nil || input.IsPrintContract != nil || input.ExpectedDeliveryDate != nil {
		number := session.ContractNumber
		if input.ContractNumber != nil {
			number = *input.ContractNumber
		}
		isPrint := session.IsPrintContract
		if input.IsPrintContract != nil {
			isPrint = *input.IsPrintContract
		}
		expected := session.ExpectedDeliveryDate
		if input.ExpectedDeliveryDate != nil {
			if *input.ExpectedDeliveryDate == "" {
				expected = nil
			} else {
				parsed, err := time.Parse("2006-01-02", *input.ExpectedDeliveryDate)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "expected_delivery_date must be YYYY-MM-DD"})
					return
				}
				expected = &parsed
			}
		}
		session.SetContract(number, isPrint, expected)
	}

	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

func (s *apiServer) closeSessionHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	s.registry.Close(session.ID)
	c.Status(http.StatusNoContent)
}

type setCustomerRequest struct {
	CustomerId int `json:"customer_id" binding:"required"`
}

func (s *apiServer) setCustomerHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var input setCustomerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	customer, err := models.GetCustomer(c.Request.Context(), input.CustomerId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	accounts, err := models.GetExpiryAccountsForCustomer(c.Request.Context(), customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expiry accounts"})
		return
	}

	session.SetCustomer(customer.ToParty(), accounts)
	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

type setSupplierRequest struct {
	SupplierId int `json:"supplier_id" binding:"required"`
}

func (s *apiServer) setSupplierHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var input setSupplierRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	supplier, err := models.GetSupplier(c.Request.Context(), input.SupplierId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
		return
	}

	session.SetSupplier(supplier.ToParty())
	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

type toggleProductRequest struct {
	ProductId int `json:"product_id" binding:"required"`
}

func (s *apiServer) toggleProductHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var input toggleProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	product, err := models.GetProduct(c.Request.Context(), input.ProductId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	taxes, err := models.GetTaxRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load taxes"})
		return
	}

	selected := session.AddProduct(product.ToCartProduct(taxes))
	c.JSON(http.StatusOK, gin.H{
		"selected": selected,
		"session":  s.sessionViewOf(session),
	})
}

type replaceProductsRequest struct {
	ProductIds []int `json:"product_ids" binding:"required"`
}

func (s *apiServer) replaceProductsHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	var input replaceProductsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	var snapshots []cart.Product
	if len(input.ProductIds) > 0 {
		records, err := models.GetProducts(c.Request.Context(), input.ProductIds)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "one or more products not found"})
			return
		}
		taxes, err := models.GetTaxRates(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load taxes"})
			return
		}
		snapshots = make([]cart.Product, 0, len(records))
		for _, record := range records {
			snapshots = append(snapshots, record.ToCartProduct(taxes))
		}
	}

	session.ReplaceSelection(snapshots)
	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

func (s *apiServer) removeProductHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	productId, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	session.RemoveProduct(productId)
	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

type expiryUpdate struct {
	Apply         bool            `json:"apply"`
	AccountId     int             `json:"account_id"`
	AccountName   string          `json:"account_name"`
	StartDate     string          `json:"start_date"`
	DurationValue decimal.Decimal `json:"duration_value"`
	DurationUnit  string          `json:"duration_unit"`
}

type updateLineRequest struct {
	UnitId             *int             `json:"unit_id"`
	Quantity           *decimal.Decimal `json:"quantity"`
	PriceOverride      *decimal.Decimal `json:"price_override"`
	ClearPriceOverride *bool            `json:"clear_price_override"`
	Discount           *decimal.Decimal `json:"discount"`
	Note               *string          `json:"note"`
	GiveawayQuantity   *decimal.Decimal `json:"giveaway_quantity"`
	TaxIds             *[]int           `json:"tax_ids"`
	ApplyWarranty      *bool            `json:"apply_warranty"`
	IncludeInContract  *bool            `json:"include_in_contract"`
	Expiry             *expiryUpdate    `json:"expiry"`
}

// updateLineHandler applies the provided edits to one line. Absent fields
// are left alone, so the screen can PATCH a single keystroke at a time.
func (s *apiServer) updateLineHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	productId, ok := pathInt(c, "productId")
	if !ok {
		return
	}
	if !session.HasProduct(productId) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product is not in the cart"})
		return
	}

	var input updateLineRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	if input.Quantity != nil && !input.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	if input.Discount != nil && input.Discount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount cannot be negative"})
		return
	}
	if input.GiveawayQuantity != nil && input.GiveawayQuantity.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "giveaway_quantity cannot be negative"})
		return
	}

	if input.UnitId != nil {
		session.SetUnit(productId, *input.UnitId)
	}
	if input.Quantity != nil {
		session.SetQuantity(productId, *input.Quantity)
	}
	if input.ClearPriceOverride != nil && *input.ClearPriceOverride {
		session.SetPriceOverride(productId, nil)
	} else if input.PriceOverride != nil {
		session.SetPriceOverride(productId, input.PriceOverride)
	}
	if input.Discount != nil {
		session.SetDiscount(productId, *input.Discount)
	}
	if input.Note != nil {
		session.SetNote(productId, *input.Note)
	}
	if input.GiveawayQuantity != nil {
		session.SetGiveaway(productId, *input.GiveawayQuantity)
	}
	if input.TaxIds != nil {
		session.SetTaxes(productId, *input.TaxIds)
	}
	if input.ApplyWarranty != nil {
		session.SetWarranty(productId, *input.ApplyWarranty)
	}
	if input.IncludeInContract != nil {
		session.SetIncludeInContract(productId, *input.IncludeInContract)
	}
	if input.Expiry != nil {
		var startDate *time.Time
		if input.Expiry.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", input.Expiry.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "expiry start_date must be YYYY-MM-DD"})
				return
			}
			startDate = &parsed
		}
		session.SetExpiry(productId, input.Expiry.Apply, input.Expiry.AccountId, input.Expiry.AccountName, startDate, cart.ExpiryDuration{
			Value: input.Expiry.DurationValue,
			Unit:  input.Expiry.DurationUnit,
		})
	}

	c.JSON(http.StatusOK, s.sessionViewOf(session))
}

func (s *apiServer) validateSessionHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}
	if err := session.Validate(); err != nil {
		respondRuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondRuleError(c *gin.Context, err error) {
	if ruleErr, ok := err.(*cart.RuleError); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ruleErr.Message, "rule": ruleErr.Rule, "entity": ruleErr.Entity})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// submitSessionHandler gates on validation, persists the cart as an invoice
// or a purchase order, and closes the session only after the write succeeds.
func (s *apiServer) submitSessionHandler(c *gin.Context) {
	session, ok := s.session(c)
	if !ok {
		return
	}

	ctx, span := tracer.Start(c.Request.Context(), "cart.submit")
	defer span.End()

	if err := session.Validate(); err != nil {
		respondRuleError(c, err)
		return
	}

	submission := session.BuildSubmission()
	if len(submission.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
		return
	}

	switch session.Kind {
	case cart.KindPurchaseOrder:
		order, err := models.CreatePurchaseOrder(ctx, submission)
		if err != nil {
			config.LogError(config.GetLogger(), "handlers", "submitSessionHandler", "create purchase order", submission, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.registry.Close(session.ID)
		c.JSON(http.StatusCreated, order)
	default:
		invoice, err := models.CreateSalesInvoice(ctx, submission)
		if err != nil {
			config.LogError(config.GetLogger(), "handlers", "submitSessionHandler", "create sales invoice", submission, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		s.registry.Close(session.ID)
		c.JSON(http.StatusCreated, invoice)
	}
}

func (s *apiServer) notificationsHandler(c *gin.Context) {
	businessId, _ := utils.GetBusinessIdFromContext(c.Request.Context())

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	notifications, err := pricefeed.ListNotifications(businessId, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (s *apiServer) createCustomerHandler(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		if _, ok := err.(*cart.RuleError); ok {
			respondRuleError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (s *apiServer) getInvoiceHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	invoice, err := models.GetSalesInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type editSubmissionRequest struct {
	SessionId string `json:"session_id" binding:"required"`
}

// updateInvoiceHandler re-submits an edit session over an existing invoice,
// replacing its lines and totals. The session closes once the write lands.
func (s *apiServer) updateInvoiceHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var input editSubmissionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	session, ok := s.sessionByID(c, input.SessionId)
	if !ok {
		return
	}
	if session.Kind != cart.KindInvoice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session is not an invoice session"})
		return
	}

	if err := session.Validate(); err != nil {
		respondRuleError(c, err)
		return
	}

	submission := session.BuildSubmission()
	if len(submission.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
		return
	}

	invoice, err := models.UpdateSalesInvoice(c.Request.Context(), id, submission)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		config.LogError(config.GetLogger(), "handlers", "updateInvoiceHandler", "update sales invoice", submission, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.registry.Close(session.ID)
	c.JSON(http.StatusOK, invoice)
}

// updatePurchaseOrderHandler is the purchase order counterpart of
// updateInvoiceHandler.
func (s *apiServer) updatePurchaseOrderHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var input editSubmissionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}

	session, ok := s.sessionByID(c, input.SessionId)
	if !ok {
		return
	}
	if session.Kind != cart.KindPurchaseOrder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session is not a purchase order session"})
		return
	}

	if err := session.Validate(); err != nil {
		respondRuleError(c, err)
		return
	}

	submission := session.BuildSubmission()
	if len(submission.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
		return
	}

	order, err := models.UpdatePurchaseOrder(c.Request.Context(), id, submission)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
			return
		}
		config.LogError(config.GetLogger(), "handlers", "updatePurchaseOrderHandler", "update purchase order", submission, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.registry.Close(session.ID)
	c.JSON(http.StatusOK, order)
}

func (s *apiServer) getPurchaseOrderHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	order, err := models.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *apiServer) exportInvoiceHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	invoice, err := models.GetSalesInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}

	buf, filename, err := reports.ExportSalesInvoice(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *apiServer) exportPurchaseOrderHandler(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	order, err := models.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}

	buf, filename, err := reports.ExportPurchaseOrder(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

type publishPriceUpdateRequest struct {
	ProductId   int             `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name"`
	NewPrice    decimal.Decimal `json:"new_price" binding:"required"`
}

// publishPriceUpdateHandler lets catalog tooling push a price change through
// the same feed the external catalog service uses.
func (s *apiServer) publishPriceUpdateHandler(c *gin.Context) {
	var input publishPriceUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(err)})
		return
	}
	if !input.NewPrice.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_price must be positive"})
		return
	}

	businessId, _ := utils.GetBusinessIdFromContext(c.Request.Context())
	cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())

	priceJSON, err := input.NewPrice.MarshalJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode price"})
		return
	}

	messageId, err := config.PublishPriceUpdate(c.Request.Context(), config.PriceUpdateMessage{
		BusinessId:    businessId,
		ProductId:     input.ProductId,
		ProductName:   input.ProductName,
		NewPrice:      priceJSON,
		UpdatedAt:     time.Now().UTC(),
		CorrelationId: cid,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish price update"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message_id": messageId})
}
