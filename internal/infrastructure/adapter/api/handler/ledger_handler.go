package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler handles balance-mutating HTTP requests. Every mutation is
// gated on the access policy before it reaches the ledger.
type LedgerHandler struct {
	ledger LedgerService
	policy AccessPolicy
	logger coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger LedgerService, policy AccessPolicy, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledger,
		policy: policy,
		logger: logger,
	}
}

// Credit handles the POST /users/:userId/credit endpoint
func (h *LedgerHandler) Credit(c *gin.Context) {
	h.mutate(c, entity.KindCredit)
}

// Debit handles the POST /users/:userId/debit endpoint
func (h *LedgerHandler) Debit(c *gin.Context) {
	h.mutate(c, entity.KindDebit)
}

func (h *LedgerHandler) mutate(c *gin.Context, kind entity.TransactionKind) {
	userID := c.Param("userId")

	var req dto.MutateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid balance mutation request", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	allowed, err := h.policy.CanMutateBalances(c.Request.Context(), req.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		h.logger.Warn("Balance mutation denied", map[string]any{
			"user_id":  userID,
			"actor_id": req.ActorID,
			"kind":     string(kind),
		})
		respondForbidden(c)
		return
	}

	var user *entity.User
	if kind == entity.KindCredit {
		user, err = h.ledger.Credit(c.Request.Context(), userID, req.Username, *req.Amount, req.Reason, req.ActorID, req.ActorUsername)
	} else {
		user, err = h.ledger.Debit(c.Request.Context(), userID, req.Username, *req.Amount, req.Reason, req.ActorID, req.ActorUsername)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:   user.ID,
		Username: user.Username,
		Miles:    user.Miles,
	})
}

// SetMiles handles the PUT /users/:userId/miles endpoint
func (h *LedgerHandler) SetMiles(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid set balance request", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	allowed, err := h.policy.CanMutateBalances(c.Request.Context(), req.ActorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		h.logger.Warn("Balance override denied", map[string]any{
			"user_id":  userID,
			"actor_id": req.ActorID,
		})
		respondForbidden(c)
		return
	}

	user, err := h.ledger.SetAbsolute(c.Request.Context(), userID, req.Username, *req.Amount, req.ActorID, req.ActorUsername)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:   user.ID,
		Username: user.Username,
		Miles:    user.Miles,
	})
}
