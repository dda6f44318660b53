package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/dto"
)

// ActorIDHeader identifies the acting user on read requests. The calling
// platform is trusted to supply it; this service performs authorization,
// not authentication.
const ActorIDHeader = "X-Actor-ID"

// QueryHandler handles read-only HTTP requests
type QueryHandler struct {
	ledger LedgerService
	policy AccessPolicy
	logger coreport.Logger
}

// NewQueryHandler creates a new query handler instance
func NewQueryHandler(ledger LedgerService, policy AccessPolicy, logger coreport.Logger) *QueryHandler {
	return &QueryHandler{
		ledger: ledger,
		policy: policy,
		logger: logger,
	}
}

// GetBalance handles the GET /users/:userId/balance endpoint
func (h *QueryHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.ledger.GetBalance(c.Request.Context(), userID)
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

// GetUserTransactions handles the GET /users/:userId/transactions endpoint.
// Users may always read their own history; reading someone else's requires
// the staff role.
func (h *QueryHandler) GetUserTransactions(c *gin.Context) {
	userID := c.Param("userId")
	actorID := c.GetHeader(ActorIDHeader)

	if actorID != userID {
		allowed, err := h.policy.CanViewOtherHistory(c.Request.Context(), actorID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !allowed {
			h.logger.Warn("History view denied", map[string]any{
				"user_id":  userID,
				"actor_id": actorID,
			})
			respondForbidden(c)
			return
		}
	}

	limit := parseLimit(c, 0)
	transactions, err := h.ledger.UserHistory(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, transactionToDTO(tx))
	}
	c.JSON(http.StatusOK, response)
}

// GetAllTransactions handles the GET /transactions endpoint. Staff only.
func (h *QueryHandler) GetAllTransactions(c *gin.Context) {
	actorID := c.GetHeader(ActorIDHeader)

	allowed, err := h.policy.CanViewOtherHistory(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		h.logger.Warn("Global feed view denied", map[string]any{
			"actor_id": actorID,
		})
		respondForbidden(c)
		return
	}

	limit := parseLimit(c, 0)
	transactions, err := h.ledger.GlobalHistory(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TransactionFeedItem, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, dto.TransactionFeedItem{
			TransactionResponse: transactionToDTO(tx.Transaction),
			Username:            tx.Username,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetLeaderboard handles the GET /leaderboard endpoint
func (h *QueryHandler) GetLeaderboard(c *gin.Context) {
	limit := parseLimit(c, 0)

	entries, err := h.ledger.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for i, entry := range entries {
		response = append(response, dto.LeaderboardEntryResponse{
			Rank:     i + 1,
			UserID:   entry.UserID,
			Username: entry.Username,
			Miles:    entry.Miles,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetStats handles the GET /stats endpoint. Staff only.
func (h *QueryHandler) GetStats(c *gin.Context) {
	actorID := c.GetHeader(ActorIDHeader)

	allowed, err := h.policy.CanMutateBalances(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		h.logger.Warn("Stats view denied", map[string]any{
			"actor_id": actorID,
		})
		respondForbidden(c)
		return
	}

	stats, err := h.ledger.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalUsers: stats.TotalUsers,
		TotalMiles: stats.TotalMiles,
		AvgMiles:   stats.AvgMiles,
		MaxMiles:   stats.MaxMiles,
	})
}

// parseLimit reads the limit query parameter, falling back to def on
// absence or garbage. Range clamping is the usecase's job.
func parseLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return limit
}

func transactionToDTO(tx entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		Seq:           tx.Seq,
		UserID:        tx.UserID,
		Amount:        tx.Amount,
		Kind:          string(tx.Kind),
		Reason:        tx.Reason,
		ActorID:       tx.ActorID,
		ActorUsername: tx.ActorUsername,
		Timestamp:     tx.Timestamp,
	}
}
