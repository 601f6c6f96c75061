package billing

import (
	"errors"
	"net/http"

	"studybilling/internal/api"
	"studybilling/internal/auth"
	"studybilling/internal/course"
	"studybilling/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Pay godoc
// @Summary      Pay for a course
// @Description  Debits the authenticated user's balance for the course. Rent-type courses get an expiry a week after payment.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Course code"
// @Success      201   {object}  PayResponse
// @Failure      401   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      406   {object}  api.ErrorResponse
// @Failure      409   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /api/v1/courses/{code}/pay [post]
func (h *Handler) Pay(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	result, err := h.service.Pay(c.Request.Context(), userID, c.Param("code"), nil)
	if err != nil {
		switch {
		case errors.Is(err, course.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Course not found"})
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, ErrInsufficientFunds):
			c.JSON(http.StatusNotAcceptable, api.ErrorResponse{Error: "Not enough money for this operation"})
		case errors.Is(err, ErrConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Concurrent balance update, retry the operation"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Payment failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, PayResponse{
		Success:    true,
		CourseType: string(result.CourseType),
		ExpiresAt:  result.Transaction.ExpiresAt,
	})
}

// Deposit godoc
// @Summary      Deposit money to own balance
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      DepositRequest  true  "Deposit amount"
// @Success      200      {object}  DepositResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/v1/deposit [post]
func (h *Handler) Deposit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Deposit amount cannot be negative"})
		return
	}

	u, err := h.service.Deposit(c.Request.Context(), userID, req.Amount, nil)
	if err != nil {
		switch {
		case errors.Is(err, ErrNegativeDeposit):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Deposit amount cannot be negative"})
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Deposit failed"})
		}
		return
	}

	c.JSON(http.StatusOK, DepositResponse{
		Message: "balance recharged",
		Balance: u.Balance,
	})
}

// Transactions godoc
// @Summary      Get user transactions
// @Description  Transaction history of the authenticated user. Supports filter[type], filter[course_code] and filter[skip_expired] query parameters.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        filter[type]          query     string  false  "Transaction type (payment|deposit)"
// @Param        filter[course_code]   query     string  false  "Course code"
// @Param        filter[skip_expired]  query     string  false  "Skip expired rentals (true|false)"
// @Success      200  {array}   TransactionResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/transactions [get]
func (h *Handler) Transactions(c *gin.Context) {
	username, ok := auth.GetUsername(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var f Filter

	if rawType := c.Query("filter[type]"); rawType != "" {
		txType, err := ParseTransactionType(rawType)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: `Only "payment" or "deposit" types supported`})
			return
		}
		f.Type = &txType
	}

	if code := c.Query("filter[course_code]"); code != "" {
		f.CourseCode = &code
	}

	switch c.Query("filter[skip_expired]") {
	case "", "false":
	case "true":
		f.SkipExpired = true
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: `"skip_expired" must be a boolean type`})
		return
	}

	txs, err := h.service.Transactions(c.Request.Context(), username, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load transactions"})
		return
	}

	response := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		item := TransactionResponse{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			Type:      string(t.Type),
			Amount:    t.Value,
			ExpiresAt: t.ExpiresAt,
		}
		if t.Type == TypePayment {
			item.CourseCode = t.CourseCode
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}
