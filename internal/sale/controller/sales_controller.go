package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	apperrors "tradepost/internal/errors"
)

type CreateSaleUseCase interface {
	Execute(ctx context.Context, userID int, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
}

type UpdateSaleUseCase interface {
	Execute(ctx context.Context, userID int, saleID uint, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
}

type DeleteSaleUseCase interface {
	Execute(ctx context.Context, userID int, saleID uint, restoreStock bool) (*dto.DeleteSaleResponse, error)
}

type GetSaleUseCase interface {
	Execute(ctx context.Context, userID int, saleID uint) (*dto.SaleResponse, error)
}

type CheckStockUseCase interface {
	CheckForCreate(ctx context.Context, req dto.StockCheckRequest) (*dto.StockCheckResponse, error)
	CheckForUpdate(ctx context.Context, saleID uint, req dto.StockCheckRequest) (*dto.StockCheckResponse, error)
}

type SalesController struct {
	createUC CreateSaleUseCase
	updateUC UpdateSaleUseCase
	deleteUC DeleteSaleUseCase
	getUC    GetSaleUseCase
	checkUC  CheckStockUseCase
	logger   *zap.Logger
}

func NewSalesController(
	createUC CreateSaleUseCase,
	updateUC UpdateSaleUseCase,
	deleteUC DeleteSaleUseCase,
	getUC GetSaleUseCase,
	checkUC CheckStockUseCase,
	logger *zap.Logger,
) *SalesController {
	return &SalesController{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		checkUC:  checkUC,
		logger:   logger,
	}
}

func (c *SalesController) CreateSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := c.userID(w, r, traceID)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	details = append(details, validateItems(req.Items, true)...)
	if req.Status != "" && !domain.IsValidSaleStatus(req.Status) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of PENDING, COMPLETED, CANCELLED",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	resp, err := c.createUC.Execute(r.Context(), userID, req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *SalesController) UpdateSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := c.userID(w, r, traceID)
	if !ok {
		return
	}
	saleID, ok := c.saleID(w, r, traceID)
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.Items != nil {
		details = append(details, validateItems(*req.Items, true)...)
	}
	if req.Status != nil && !domain.IsValidSaleStatus(*req.Status) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of PENDING, COMPLETED, CANCELLED",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	resp, err := c.updateUC.Execute(r.Context(), userID, saleID, req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *SalesController) DeleteSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := c.userID(w, r, traceID)
	if !ok {
		return
	}
	saleID, ok := c.saleID(w, r, traceID)
	if !ok {
		return
	}

	// Stock restoration is the default; restoreStock=false opts out.
	restoreStock := true
	if raw := r.URL.Query().Get("restoreStock"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.writeValidationError(w, traceID, "invalid restoreStock", apperrors.ValidationDetail{
				Field:   "restoreStock",
				Message: "restoreStock must be a boolean",
			})
			return
		}
		restoreStock = parsed
	}

	resp, err := c.deleteUC.Execute(r.Context(), userID, saleID, restoreStock)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *SalesController) GetSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	userID, ok := c.userID(w, r, traceID)
	if !ok {
		return
	}
	saleID, ok := c.saleID(w, r, traceID)
	if !ok {
		return
	}

	resp, err := c.getUC.Execute(r.Context(), userID, saleID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *SalesController) CheckStockForCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	req, ok := c.decodeStockCheckRequest(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.checkUC.CheckForCreate(r.Context(), req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *SalesController) CheckStockForUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	saleID, ok := c.saleID(w, r, traceID)
	if !ok {
		return
	}

	req, ok := c.decodeStockCheckRequest(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.checkUC.CheckForUpdate(r.Context(), saleID, req)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	resp.TraceID = traceID
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *SalesController) decodeStockCheckRequest(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (dto.StockCheckRequest, bool) {
	var req dto.StockCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return dto.StockCheckRequest{}, false
	}

	// Update checks may legitimately carry an empty set (remove all items).
	if details := validateItems(req.Items, false); len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return dto.StockCheckRequest{}, false
	}

	return req, true
}

func (c *SalesController) userID(w http.ResponseWriter, r *http.Request, traceID string) (int, bool) {
	raw := r.Header.Get("X-User-ID")
	userID, err := strconv.Atoi(raw)
	if err != nil || userID <= 0 {
		c.writeValidationError(w, traceID, "invalid user", apperrors.ValidationDetail{
			Field:   "X-User-ID",
			Message: "X-User-ID header must be a positive integer",
		})
		return 0, false
	}
	return userID, true
}

func (c *SalesController) saleID(w http.ResponseWriter, r *http.Request, traceID string) (uint, bool) {
	raw := chi.URLParam(r, "saleId")
	saleID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || saleID == 0 {
		c.writeValidationError(w, traceID, "invalid saleId", apperrors.ValidationDetail{
			Field:   "saleId",
			Message: "saleId must be a positive integer",
		})
		return 0, false
	}
	return uint(saleID), true
}

// validateItems checks request line items. Several lines may reference the
// same product; stock movement works on aggregated totals.
func validateItems(items []dto.SaleItemRequest, required bool) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if required && len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	for idx, item := range items {
		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].productId",
				Message: "each productId must be a positive integer",
			})
		}

		if item.Quantity < 1 || item.Quantity > 10000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be between 1 and 10000",
			})
		}

		if item.UnitPrice.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].unitPrice",
				Message: "unitPrice must be non-negative",
			})
		}
	}

	return details
}

func (c *SalesController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "DEADLOCK", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *SalesController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *SalesController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *SalesController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
