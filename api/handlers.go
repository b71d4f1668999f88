package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/barqr/constant"
	"github.com/prasetyowira/barqr/domain/ean13"
	"github.com/prasetyowira/barqr/domain/generator"
	appLogger "github.com/prasetyowira/barqr/infrastructure/logger"
)

// Handler contains service dependencies for API handlers
type Handler struct {
	service *generator.Service
}

// GenerateRequest is the request object for generate and preview endpoints
type GenerateRequest struct {
	Symbology string `json:"symbology"`
	Content   string `json:"content"`
}

// BatchRequest is the request object for batch generation
type BatchRequest struct {
	Symbology string   `json:"symbology"`
	Contents  []string `json:"contents"`
}

// NormalizeRequest is the request object for EAN-13 normalization
type NormalizeRequest struct {
	Input string `json:"input"`
}

// NormalizeResponse carries the normalized EAN-13 code
type NormalizeResponse struct {
	Code       string `json:"code"`
	CheckDigit int    `json:"check_digit"`
}

// ListResponse wraps the recent-codes listing
type ListResponse struct {
	Codes []*generator.Code `json:"codes"`
}

// BatchResponse wraps the per-item batch outcomes
type BatchResponse struct {
	Items []generator.BatchItem `json:"items"`
}

// ErrorResponse represents an API error response. Expected, Provided and
// Found carry EAN-13 digit details when applicable.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     int    `json:"code"`
	Expected *int   `json:"expected,omitempty"`
	Provided *int   `json:"provided,omitempty"`
	Found    *int   `json:"found,omitempty"`
}

// NewHandler creates a new API handler
func NewHandler(service *generator.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GenerateCode handles code generation with persistence
func (h *Handler) GenerateCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingGenerate, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGenerateCode,
	})

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(ctx, w, err, constant.CtxGenerateCode)
		return
	}

	symbology, err := generator.ParseSymbology(req.Symbology)
	if err != nil {
		WriteJSONError(w, constant.ErrUnknownSymbology, http.StatusBadRequest)
		return
	}

	code, _, err := h.service.Generate(ctx, symbology, req.Content)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxGenerateCode)
		return
	}

	WriteJSON(w, code, http.StatusCreated)
}

// PreviewCode renders a code without persisting it and returns the PNG
func (h *Handler) PreviewCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingPreview, appLogger.LoggerInfo{
		ContextFunction: constant.CtxPreviewCode,
	})

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(ctx, w, err, constant.CtxPreviewCode)
		return
	}

	symbology, err := generator.ParseSymbology(req.Symbology)
	if err != nil {
		WriteJSONError(w, constant.ErrUnknownSymbology, http.StatusBadRequest)
		return
	}

	normalized, image, err := h.service.Preview(ctx, symbology, req.Content)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxPreviewCode)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Normalized-Content", normalized)
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}

// BatchCodes handles batch generation
func (h *Handler) BatchCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingBatch, appLogger.LoggerInfo{
		ContextFunction: constant.CtxBatchCodes,
	})

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(ctx, w, err, constant.CtxBatchCodes)
		return
	}

	symbology, err := generator.ParseSymbology(req.Symbology)
	if err != nil {
		WriteJSONError(w, constant.ErrUnknownSymbology, http.StatusBadRequest)
		return
	}

	items, err := h.service.GenerateBatch(ctx, symbology, req.Contents)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxBatchCodes)
		return
	}

	WriteJSON(w, BatchResponse{Items: items}, http.StatusOK)
}

// ListCodes returns the most recently generated codes
func (h *Handler) ListCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	codes, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxListRecent)
		return
	}

	WriteJSON(w, ListResponse{Codes: codes}, http.StatusOK)
}

// GetCode returns a single code record
func (h *Handler) GetCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseCodeID(w, r)
	if !ok {
		return
	}

	code, err := h.service.GetCode(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxGetCode)
		return
	}

	WriteJSON(w, code, http.StatusOK)
}

// GetCodeImage returns the PNG image for a stored code
func (h *Handler) GetCodeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseCodeID(w, r)
	if !ok {
		return
	}

	image, err := h.service.GetImage(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxGetCodeImage)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}

// NormalizeEAN13 exposes the checksum module directly: it returns the
// normalized 13-digit code, or the structured validation error
func (h *Handler) NormalizeEAN13(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(ctx, w, err, constant.CtxNormalizeEAN13)
		return
	}

	code, err := ean13.Normalize(req.Input)
	if err != nil {
		writeServiceError(ctx, w, err, constant.CtxNormalizeEAN13)
		return
	}

	WriteJSON(w, NormalizeResponse{
		Code:       code,
		CheckDigit: int(code[ean13.FullLength-1] - '0'),
	}, http.StatusOK)
}

func parseCodeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "codeID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		WriteJSONError(w, "Invalid code id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// writeDecodeError reports a malformed request body
func writeDecodeError(ctx context.Context, w http.ResponseWriter, err error, fn string) {
	appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIDecodeRequest,
			Message: err.Error(),
			Type:    constant.ErrTypeAPI,
		},
	})

	WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
}

// writeServiceError maps domain errors onto HTTP responses
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, fn string) {
	var checksumErr *ean13.ChecksumError
	if errors.As(err, &checksumErr) {
		WriteJSON(w, ErrorResponse{
			Error:    err.Error(),
			Code:     http.StatusUnprocessableEntity,
			Expected: &checksumErr.Expected,
			Provided: &checksumErr.Provided,
		}, http.StatusUnprocessableEntity)
		return
	}

	var lengthErr *ean13.LengthError
	if errors.As(err, &lengthErr) {
		WriteJSON(w, ErrorResponse{
			Error: err.Error(),
			Code:  http.StatusUnprocessableEntity,
			Found: &lengthErr.Found,
		}, http.StatusUnprocessableEntity)
		return
	}

	switch err.Error() {
	case constant.ErrEmptyContent, constant.ErrUnknownSymbology, constant.ErrContentTooLong,
		constant.ErrContentNotASCII, constant.ErrBatchTooLarge:
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case constant.ErrCodeNotFound:
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		appLogger.CtxError(ctx, "Service error", appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
