package constant

// Domain service error codes
const (
	// Generator service - Validation errors (0xx)
	ErrCodeEmptyContent     = "SVC001"
	ErrCodeUnknownSymbology = "SVC002"
	ErrCodeContentTooLong   = "SVC003"
	ErrCodeContentNotASCII  = "SVC004"
	ErrCodeBatchTooLarge    = "SVC005"

	// Generator service - Render errors (1xx)
	ErrCodeRenderFailure = "SVC101"

	// Generator service - Storage errors (2xx)
	ErrCodeStorageFailure = "SVC201"

	// Generator service - Retrieval errors (3xx)
	ErrCodeCodeNotFound = "SVC301"

	// Generator service - Stats errors (4xx)
	ErrCodeIncrementRenders = "SVC401"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBInsert = "DB101"

	// FindByID / ListRecent operation errors (2xx)
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"
	ErrCodeDBList       = "DB204"

	// IncrementRenders operation errors (3xx)
	ErrCodeDBIncrement = "DB301"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeRender     = "render"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"
	ErrTypeStats      = "stats"

	// Infrastructure error types
	ErrTypeDB = "db"
)
