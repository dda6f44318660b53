package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	errs "github.com/skyloyalty/miles-ledger/internal/domain/error"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/logger"
)

func setupLedgerRouter(ledger *mockLedgerService, policy *mockAccessPolicy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLedgerHandler(ledger, policy, logger.NewNoopLogger())
	router := gin.New()
	router.POST("/users/:userId/credit", h.Credit)
	router.POST("/users/:userId/debit", h.Debit)
	router.PUT("/users/:userId/miles", h.SetMiles)
	return router
}

func postJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestLedgerHandler_Credit(t *testing.T) {
	t.Run("should credit when the actor is staff", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "staff-1").Return(true, nil)
		ledger.On("Credit", mock.Anything, "user-1", "alice", int64(50), "flight bonus", "staff-1", "bob").
			Return(&entity.User{ID: "user-1", Username: "alice", Miles: 150}, nil)

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/credit", dto.MutateBalanceRequest{
			Username: "alice", Amount: int64Ptr(50), Reason: "flight bonus", ActorID: "staff-1", ActorUsername: "bob",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.BalanceResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(150), resp.Miles)

		ledger.AssertExpectations(t)
		policy.AssertExpectations(t)
	})

	t.Run("should return 403 when the actor is not staff", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "user-2").Return(false, nil)

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/credit", dto.MutateBalanceRequest{
			Amount: int64Ptr(50), ActorID: "user-2",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		ledger.AssertNotCalled(t, "Credit")
	})

	t.Run("should return 400 on a malformed body", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		router := setupLedgerRouter(ledger, policy)
		req := httptest.NewRequest(http.MethodPost, "/users/user-1/credit", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		policy.AssertNotCalled(t, "CanMutateBalances")
	})

	t.Run("should return 400 on an invalid amount", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "staff-1").Return(true, nil)
		ledger.On("Credit", mock.Anything, "user-1", "", int64(-5), "", "staff-1", "").
			Return(nil, errs.NewLedgerError("user-1", "credit", -5, "staff-1", errs.ErrInvalidAmount))

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/credit", dto.MutateBalanceRequest{
			Amount: int64Ptr(-5), ActorID: "staff-1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject an explicit zero amount with the amount error code", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "staff-1").Return(true, nil)
		ledger.On("Credit", mock.Anything, "user-1", "", int64(0), "", "staff-1", "").
			Return(nil, errs.NewLedgerError("user-1", "credit", 0, "staff-1", errs.ErrInvalidAmount))

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/credit", dto.MutateBalanceRequest{
			Amount: int64Ptr(0), ActorID: "staff-1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, errs.CodeInvalidAmount, resp.Code)
		ledger.AssertExpectations(t)
	})
}

func TestLedgerHandler_Debit(t *testing.T) {
	t.Run("should return 422 with details on insufficient balance", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "staff-1").Return(true, nil)
		ledger.On("Debit", mock.Anything, "user-1", "", int64(100), "", "staff-1", "").
			Return(nil, errs.NewInsufficientBalanceError("user-1", 30, 100))

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/debit", dto.MutateBalanceRequest{
			Amount: int64Ptr(100), ActorID: "staff-1",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, errs.CodeInsufficientBalance, resp.Code)
		assert.EqualValues(t, 30, resp.Details["currentBalance"])
		assert.EqualValues(t, 100, resp.Details["requested"])
	})

	t.Run("should return 503 on storage failure", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "staff-1").Return(true, nil)
		ledger.On("Debit", mock.Anything, "user-1", "", int64(10), "", "staff-1", "").
			Return(nil, errs.ErrStorageUnavailable)

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPost, "/users/user-1/debit", dto.MutateBalanceRequest{
			Amount: int64Ptr(10), ActorID: "staff-1",
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestLedgerHandler_SetMiles(t *testing.T) {
	t.Run("should accept a zero target", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "admin-1").Return(true, nil)
		ledger.On("SetAbsolute", mock.Anything, "user-1", "alice", int64(0), "admin-1", "carol").
			Return(&entity.User{ID: "user-1", Username: "alice", Miles: 0}, nil)

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPut, "/users/user-1/miles", dto.SetBalanceRequest{
			Username: "alice", Amount: int64Ptr(0), ActorID: "admin-1", ActorUsername: "carol",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		ledger.AssertExpectations(t)
	})

	t.Run("should return 403 when the actor is not staff", func(t *testing.T) {
		ledger := new(mockLedgerService)
		policy := new(mockAccessPolicy)

		policy.On("CanMutateBalances", mock.Anything, "user-2").Return(false, nil)

		router := setupLedgerRouter(ledger, policy)
		w := postJSON(router, http.MethodPut, "/users/user-1/miles", dto.SetBalanceRequest{
			Amount: int64Ptr(40), ActorID: "user-2",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		ledger.AssertNotCalled(t, "SetAbsolute")
	})
}
