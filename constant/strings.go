package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxGenerate      = "Generate"
	CtxPreview       = "Preview"
	CtxGenerateBatch = "GenerateBatch"
	CtxGetCode       = "GetCode"
	CtxListRecent    = "ListRecent"
	CtxGetImage      = "GetImage"

	// Infrastructure context names
	CtxDB               = "db"
	CtxStore            = "Store"
	CtxFindByID         = "FindByID"
	CtxList             = "List"
	CtxIncrementRenders = "IncrementRenders"
	CtxClose            = "Close"
	CtxRender           = "render"
	CtxAPI              = "api"

	// General context names
	CtxRouter         = "Router"
	CtxMain           = "Main"
	CtxGenerateCode   = "GenerateCode"
	CtxPreviewCode    = "PreviewCode"
	CtxBatchCodes     = "BatchCodes"
	CtxGetCodeImage   = "GetCodeImage"
	CtxNormalizeEAN13 = "NormalizeEAN13"
)

// Data field keys
const (
	// Service data fields
	DataService   = "service"
	DataSymbology = "symbology"
	DataContent   = "content"
	DataCodeID    = "code_id"
	DataRenders   = "renders"
	DataCount     = "count"
	DataBatchSize = "batch_size"
	DataImageSize = "image_bytes"
	DataLimit     = "limit"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrEmptyContent     = "content cannot be empty"
	ErrUnknownSymbology = "unknown symbology"
	ErrContentTooLong   = "content exceeds maximum length for symbology"
	ErrContentNotASCII  = "code128 content must be ASCII"
	ErrBatchTooLarge    = "batch exceeds configured limit"
	ErrCodeNotFound     = "code not found"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIBadID          = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteGenerateCode   = "/api/codes"
	RoutePreviewCode    = "/api/codes/preview"
	RouteBatchCodes     = "/api/codes/batch"
	RouteListCodes      = "/api/codes"
	RouteCodeByID       = "/api/codes/{codeID}"
	RouteCodeImage      = "/api/codes/{codeID}/image"
	RouteNormalizeEAN13 = "/api/ean13/normalize"
	RouteHealthcheck    = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToInitDB      = "Failed to initialize database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgRequestCompleted    = "Request completed"
	MsgHandlingGenerate    = "Handling code generation request"
	MsgHandlingPreview     = "Handling preview request"
	MsgHandlingBatch       = "Handling batch generation request"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
)

// Cache namespaces
const (
	CodeNamespace  = "CODE"
	ImageNamespace = "IMAGE"
)
