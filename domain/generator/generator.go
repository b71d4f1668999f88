package generator

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prasetyowira/barqr/constant"
	"github.com/prasetyowira/barqr/domain/ean13"
	"github.com/prasetyowira/barqr/infrastructure/cache"
	"github.com/prasetyowira/barqr/infrastructure/logger"
)

// Symbology identifies a supported code type.
type Symbology string

const (
	SymbologyQR      Symbology = "qr"
	SymbologyEAN13   Symbology = "ean13"
	SymbologyCode128 Symbology = "code128"
)

// maxQRBytes is the byte-mode capacity of a version 40 QR code.
const maxQRBytes = 2953

// ParseSymbology maps a request selector onto a Symbology.
func ParseSymbology(s string) (Symbology, error) {
	switch Symbology(s) {
	case SymbologyQR, SymbologyEAN13, SymbologyCode128:
		return Symbology(s), nil
	default:
		return "", errors.New(constant.ErrUnknownSymbology)
	}
}

// Code represents a generated code kept in history
type Code struct {
	ID        uint      `json:"id"`
	Symbology string    `json:"symbology"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Renders   uint      `json:"renders"`
}

// BatchItem is the per-content outcome of a batch generation
type BatchItem struct {
	Content string `json:"content"`
	Code    *Code  `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Repository defines the interface for data persistence operations
type Repository interface {
	Store(ctx context.Context, code *Code) error
	FindByID(ctx context.Context, id uint) (*Code, error)
	ListRecent(ctx context.Context, limit int) ([]*Code, error)
	IncrementRenders(ctx context.Context, id uint) error
}

// Renderer produces PNG image bytes for a symbology and content.
// Content handed to it is already normalized.
type Renderer interface {
	Render(symbology, content string) ([]byte, error)
}

// Service represents the domain service for code generation
type Service struct {
	repo       Repository
	renderer   Renderer
	cache      *cache.NamespaceLRU
	batchLimit int
}

// NewService creates a new generator service
func NewService(repo Repository, renderer Renderer, lru *cache.NamespaceLRU, batchLimit int) *Service {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating generator service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService:   "generator",
			constant.DataBatchSize: batchLimit,
		},
	})

	return &Service{
		repo:       repo,
		renderer:   renderer,
		cache:      lru,
		batchLimit: batchLimit,
	}
}

// NormalizeContent validates and normalizes content for a symbology.
// For EAN-13 the returned content is the complete 13-digit code.
func (s *Service) NormalizeContent(symbology Symbology, content string) (string, error) {
	switch symbology {
	case SymbologyEAN13:
		return ean13.Normalize(content)
	case SymbologyCode128:
		if content == "" {
			return "", errors.New(constant.ErrEmptyContent)
		}
		for i := 0; i < len(content); i++ {
			if content[i] > 127 {
				return "", errors.New(constant.ErrContentNotASCII)
			}
		}
		return content, nil
	case SymbologyQR:
		if content == "" {
			return "", errors.New(constant.ErrEmptyContent)
		}
		if len(content) > maxQRBytes {
			return "", errors.New(constant.ErrContentTooLong)
		}
		return content, nil
	default:
		return "", errors.New(constant.ErrUnknownSymbology)
	}
}

// Preview validates, normalizes and renders content without persisting it
func (s *Service) Preview(ctx context.Context, symbology Symbology, content string) (string, []byte, error) {
	logger.CtxDebug(ctx, "Rendering preview", logger.LoggerInfo{
		ContextFunction: constant.CtxPreview,
		Data: map[string]interface{}{
			constant.DataSymbology: symbology,
		},
	})

	normalized, err := s.NormalizeContent(symbology, content)
	if err != nil {
		logger.CtxWarn(ctx, "Preview content rejected", logger.LoggerInfo{
			ContextFunction: constant.CtxPreview,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEmptyContent,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: symbology,
			},
		})
		return "", nil, err
	}

	image, err := s.renderer.Render(string(symbology), normalized)
	if err != nil {
		logger.CtxError(ctx, "Failed to render preview", logger.LoggerInfo{
			ContextFunction: constant.CtxPreview,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRenderFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: symbology,
			},
		})
		return "", nil, err
	}

	return normalized, image, nil
}

// Generate validates, renders and persists a code
func (s *Service) Generate(ctx context.Context, symbology Symbology, content string) (*Code, []byte, error) {
	logger.CtxDebug(ctx, "Generating code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataSymbology: symbology,
		},
	})

	normalized, image, err := s.Preview(ctx, symbology, content)
	if err != nil {
		return nil, nil, err
	}

	code := &Code{
		Symbology: string(symbology),
		Content:   normalized,
		CreatedAt: time.Now(),
		Renders:   0,
	}

	if err := s.repo.Store(ctx, code); err != nil {
		logger.CtxError(ctx, "Failed to store code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStorageFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: symbology,
				constant.DataContent:   normalized,
			},
		})
		return nil, nil, err
	}

	s.cache.Set(constant.CodeNamespace, idKey(code.ID), code)
	s.cache.Set(constant.ImageNamespace, idKey(code.ID), image)

	logger.CtxInfo(ctx, "Code generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataCodeID:    code.ID,
			constant.DataSymbology: code.Symbology,
			constant.DataContent:   code.Content,
			constant.DataImageSize: len(image),
		},
	})

	return code, image, nil
}

// GenerateBatch generates codes for a list of contents. Items are processed
// sequentially; a failing item is reported in place and does not abort the
// rest. Context cancellation is honored between items.
func (s *Service) GenerateBatch(ctx context.Context, symbology Symbology, contents []string) ([]BatchItem, error) {
	logger.CtxDebug(ctx, "Generating batch", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
		Data: map[string]interface{}{
			constant.DataSymbology: symbology,
			constant.DataBatchSize: len(contents),
		},
	})

	if len(contents) == 0 {
		return nil, errors.New(constant.ErrEmptyContent)
	}

	if len(contents) > s.batchLimit {
		logger.CtxWarn(ctx, "Batch exceeds limit", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateBatch,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeBatchTooLarge,
				Message: constant.ErrBatchTooLarge,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataBatchSize: len(contents),
			},
		})
		return nil, errors.New(constant.ErrBatchTooLarge)
	}

	items := make([]BatchItem, 0, len(contents))
	for _, content := range contents {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item := BatchItem{Content: content}
		code, _, err := s.Generate(ctx, symbology, content)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Code = code
		}
		items = append(items, item)
	}

	logger.CtxInfo(ctx, "Batch generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateBatch,
		Data: map[string]interface{}{
			constant.DataSymbology: symbology,
			constant.DataBatchSize: len(items),
		},
	})

	return items, nil
}

// GetCode retrieves a code record by its id
func (s *Service) GetCode(ctx context.Context, id uint) (*Code, error) {
	logger.CtxDebug(ctx, "Retrieving code", logger.LoggerInfo{
		ContextFunction: constant.CtxGetCode,
		Data: map[string]interface{}{
			constant.DataCodeID: id,
		},
	})

	if val, found := s.cache.Get(constant.CodeNamespace, idKey(id)); found {
		if code, ok := val.(*Code); ok {
			return code, nil
		}
	}

	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to find code by id", logger.LoggerInfo{
			ContextFunction: constant.CtxGetCode,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeCodeNotFound,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.CodeNamespace, idKey(id), code)

	return code, nil
}

// ListRecent returns the most recently generated codes
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Code, error) {
	logger.CtxDebug(ctx, "Listing recent codes", logger.LoggerInfo{
		ContextFunction: constant.CtxListRecent,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	codes, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		logger.CtxError(ctx, "Failed to list recent codes", logger.LoggerInfo{
			ContextFunction: constant.CtxListRecent,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeDBList,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
		})
		return nil, err
	}

	return codes, nil
}

// GetImage renders the stored code and counts the render. The render count
// failure is logged but does not fail the image fetch.
func (s *Service) GetImage(ctx context.Context, id uint) ([]byte, error) {
	logger.CtxDebug(ctx, "Fetching code image", logger.LoggerInfo{
		ContextFunction: constant.CtxGetImage,
		Data: map[string]interface{}{
			constant.DataCodeID: id,
		},
	})

	if val, found := s.cache.Get(constant.ImageNamespace, idKey(id)); found {
		if image, ok := val.([]byte); ok {
			s.countRender(ctx, id)
			return image, nil
		}
	}

	code, err := s.GetCode(ctx, id)
	if err != nil {
		return nil, err
	}

	image, err := s.renderer.Render(code.Symbology, code.Content)
	if err != nil {
		logger.CtxError(ctx, "Failed to render stored code", logger.LoggerInfo{
			ContextFunction: constant.CtxGetImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRenderFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataCodeID:    id,
				constant.DataSymbology: code.Symbology,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.ImageNamespace, idKey(id), image)
	s.countRender(ctx, id)

	return image, nil
}

func (s *Service) countRender(ctx context.Context, id uint) {
	if err := s.repo.IncrementRenders(ctx, id); err != nil {
		logger.CtxWarn(ctx, "Failed to increment render count", logger.LoggerInfo{
			ContextFunction: constant.CtxGetImage,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeIncrementRenders,
				Message: err.Error(),
				Type:    constant.ErrTypeStats,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
	}
}

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
