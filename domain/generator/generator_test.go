package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/prasetyowira/barqr/constant"
	"github.com/prasetyowira/barqr/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Store(ctx context.Context, code *Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*Code, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Code), args.Error(1)
}

func (m *MockRepository) ListRecent(ctx context.Context, limit int) ([]*Code, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Code), args.Error(1)
}

func (m *MockRepository) IncrementRenders(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock renderer for testing
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(symbology, content string) ([]byte, error) {
	args := m.Called(symbology, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestService(repo *MockRepository, renderer *MockRenderer) *Service {
	return NewService(repo, renderer, cache.NewNamespaceLRU(100), 10)
}

func TestParseSymbology(t *testing.T) {
	for _, valid := range []string{"qr", "ean13", "code128"} {
		sym, err := ParseSymbology(valid)
		assert.NoError(t, err)
		assert.Equal(t, Symbology(valid), sym)
	}

	_, err := ParseSymbology("datamatrix")
	assert.Error(t, err)
	assert.Equal(t, constant.ErrUnknownSymbology, err.Error())
}

func TestNormalizeContent_EAN13(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockRenderer))

	normalized, err := service.NormalizeContent(SymbologyEAN13, "123456789012")

	assert.NoError(t, err)
	assert.Equal(t, "1234567890128", normalized)
}

func TestNormalizeContent_Code128_NonASCII(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockRenderer))

	_, err := service.NormalizeContent(SymbologyCode128, "caf\xc3\xa9")

	assert.Error(t, err)
	assert.Equal(t, constant.ErrContentNotASCII, err.Error())
}

func TestNormalizeContent_QR_TooLong(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockRenderer))

	long := make([]byte, maxQRBytes+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := service.NormalizeContent(SymbologyQR, string(long))

	assert.Error(t, err)
	assert.Equal(t, constant.ErrContentTooLong, err.Error())
}

func TestPreview_EmptyContent(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	_, _, err := service.Preview(context.Background(), SymbologyQR, "")

	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyContent, err.Error())
	mockRenderer.AssertNotCalled(t, "Render")
}

func TestPreview_NormalizesBeforeRendering(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	mockRenderer.On("Render", "ean13", "1234567890128").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	normalized, image, err := service.Preview(context.Background(), SymbologyEAN13, "123456789012")

	assert.NoError(t, err)
	assert.Equal(t, "1234567890128", normalized)
	assert.NotEmpty(t, image)
	mockRepo.AssertNotCalled(t, "Store")
	mockRenderer.AssertExpectations(t)
}

func TestPreview_RenderError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	expectedError := errors.New("render error")
	mockRenderer.On("Render", "qr", "hello").Return(nil, expectedError)

	_, _, err := service.Preview(context.Background(), SymbologyQR, "hello")

	assert.Error(t, err)
	assert.Equal(t, expectedError, err)
}

func TestGenerate_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	mockRenderer.On("Render", "qr", "https://example.com").Return([]byte{1, 2, 3}, nil)
	mockRepo.On("Store", mock.Anything, mock.MatchedBy(func(code *Code) bool {
		return code.Symbology == "qr" && code.Content == "https://example.com"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*Code).ID = 42
	}).Return(nil)

	code, image, err := service.Generate(context.Background(), SymbologyQR, "https://example.com")

	assert.NoError(t, err)
	assert.NotNil(t, code)
	assert.Equal(t, uint(42), code.ID)
	assert.Equal(t, []byte{1, 2, 3}, image)
	assert.Equal(t, uint(0), code.Renders)
	mockRepo.AssertExpectations(t)
	mockRenderer.AssertExpectations(t)
}

func TestGenerate_StoreError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	expectedError := errors.New("store error")
	mockRenderer.On("Render", "qr", "hello").Return([]byte{1}, nil)
	mockRepo.On("Store", mock.Anything, mock.AnythingOfType("*generator.Code")).Return(expectedError)

	code, _, err := service.Generate(context.Background(), SymbologyQR, "hello")

	assert.Error(t, err)
	assert.Equal(t, expectedError, err)
	assert.Nil(t, code)
}

func TestGenerate_InvalidEAN13NotStored(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	_, _, err := service.Generate(context.Background(), SymbologyEAN13, "1234567890129")

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Store")
	mockRenderer.AssertNotCalled(t, "Render")
}

func TestGenerateBatch_MixedResults(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	mockRenderer.On("Render", "ean13", "1234567890128").Return([]byte{1}, nil)
	mockRenderer.On("Render", "ean13", "4006381333931").Return([]byte{2}, nil)
	mockRepo.On("Store", mock.Anything, mock.AnythingOfType("*generator.Code")).Return(nil)

	items, err := service.GenerateBatch(context.Background(), SymbologyEAN13, []string{
		"123456789012",
		"1234567890129", // bad check digit
		"4006381333931",
	})

	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.NotNil(t, items[0].Code)
	assert.Empty(t, items[0].Error)
	assert.Nil(t, items[1].Code)
	assert.NotEmpty(t, items[1].Error)
	assert.NotNil(t, items[2].Code)
	mockRepo.AssertNumberOfCalls(t, "Store", 2)
}

func TestGenerateBatch_Empty(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockRenderer))

	_, err := service.GenerateBatch(context.Background(), SymbologyQR, nil)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyContent, err.Error())
}

func TestGenerateBatch_OverLimit(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockRenderer))

	contents := make([]string, 11)
	for i := range contents {
		contents[i] = "hello"
	}

	_, err := service.GenerateBatch(context.Background(), SymbologyQR, contents)

	assert.Error(t, err)
	assert.Equal(t, constant.ErrBatchTooLarge, err.Error())
}

func TestGenerateBatch_ContextCancelled(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := service.GenerateBatch(ctx, SymbologyQR, []string{"a", "b"})

	assert.Error(t, err)
	assert.Empty(t, items)
	mockRenderer.AssertNotCalled(t, "Render")
}

func TestGetCode_CacheHit(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	cached := &Code{ID: 7, Symbology: "qr", Content: "hello"}
	service.cache.Set(constant.CodeNamespace, "7", cached)

	code, err := service.GetCode(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, cached, code)
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestGetCode_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	expectedError := errors.New(constant.ErrCodeNotFound)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, expectedError)

	code, err := service.GetCode(context.Background(), 99)

	assert.Error(t, err)
	assert.Equal(t, expectedError, err)
	assert.Nil(t, code)
	mockRepo.AssertExpectations(t)
}

func TestGetImage_RendersStoredCode(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	stored := &Code{ID: 5, Symbology: "code128", Content: "BARQR-0001"}
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
	mockRepo.On("IncrementRenders", mock.Anything, uint(5)).Return(nil)
	mockRenderer.On("Render", "code128", "BARQR-0001").Return([]byte{9, 9}, nil)

	image, err := service.GetImage(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, image)
	mockRepo.AssertExpectations(t)
	mockRenderer.AssertExpectations(t)
}

func TestGetImage_CacheHitSkipsRenderer(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	service.cache.Set(constant.ImageNamespace, "5", []byte{1, 2})
	mockRepo.On("IncrementRenders", mock.Anything, uint(5)).Return(nil)

	image, err := service.GetImage(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, image)
	mockRenderer.AssertNotCalled(t, "Render")
	mockRepo.AssertExpectations(t)
}

func TestGetImage_IncrementError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	service.cache.Set(constant.ImageNamespace, "5", []byte{1, 2})
	mockRepo.On("IncrementRenders", mock.Anything, uint(5)).Return(errors.New("increment error"))

	image, err := service.GetImage(context.Background(), 5)

	assert.NoError(t, err) // Should still succeed despite increment error
	assert.Equal(t, []byte{1, 2}, image)
}

func TestListRecent(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRenderer := new(MockRenderer)
	service := newTestService(mockRepo, mockRenderer)

	expected := []*Code{{ID: 2}, {ID: 1}}
	mockRepo.On("ListRecent", mock.Anything, 20).Return(expected, nil)

	codes, err := service.ListRecent(context.Background(), 20)

	assert.NoError(t, err)
	assert.Equal(t, expected, codes)
	mockRepo.AssertExpectations(t)
}
