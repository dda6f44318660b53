package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/dto"
)

// StaffHandler handles staff roster HTTP requests. Roster changes require
// the administrator flag asserted by the calling platform; staff
// membership itself grants no roster rights.
type StaffHandler struct {
	roster RosterService
	policy AccessPolicy
	logger coreport.Logger
}

// NewStaffHandler creates a new staff handler instance
func NewStaffHandler(roster RosterService, policy AccessPolicy, logger coreport.Logger) *StaffHandler {
	return &StaffHandler{
		roster: roster,
		policy: policy,
		logger: logger,
	}
}

// List handles the GET /staff endpoint
func (h *StaffHandler) List(c *gin.Context) {
	members, err := h.roster.ListStaff(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.StaffMemberResponse, 0, len(members))
	for _, member := range members {
		response = append(response, dto.StaffMemberResponse{
			UserID:   member.UserID,
			Username: member.Username,
			AddedAt:  member.AddedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Add handles the POST /staff endpoint
func (h *StaffHandler) Add(c *gin.Context) {
	var req dto.AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid add staff request", map[string]any{
			"error": err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if !h.policy.CanManageStaff(req.ActorID, req.ActorIsAdmin) {
		h.logger.Warn("Staff grant denied", map[string]any{
			"user_id":  req.UserID,
			"actor_id": req.ActorID,
		})
		respondForbidden(c)
		return
	}

	if err := h.roster.AddStaff(c.Request.Context(), req.UserID, req.Username); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StaffMemberResponse{
		UserID:   req.UserID,
		Username: req.Username,
	})
}

// Remove handles the DELETE /staff/:userId endpoint. Removing a user who
// is not on the roster succeeds without effect.
func (h *StaffHandler) Remove(c *gin.Context) {
	userID := c.Param("userId")
	actorID := c.Query("actorId")
	actorIsAdmin, _ := strconv.ParseBool(c.Query("actorIsAdmin"))

	if !h.policy.CanManageStaff(actorID, actorIsAdmin) {
		h.logger.Warn("Staff revoke denied", map[string]any{
			"user_id":  userID,
			"actor_id": actorID,
		})
		respondForbidden(c)
		return
	}

	if err := h.roster.RemoveStaff(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
