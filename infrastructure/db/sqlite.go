package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prasetyowira/barqr/constant"
	"github.com/prasetyowira/barqr/domain/generator"
	"github.com/prasetyowira/barqr/infrastructure/cache"
	appLogger "github.com/prasetyowira/barqr/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository implements generator.Repository interface
type SQLiteRepository struct {
	db    *gorm.DB
	cache *cache.NamespaceLRU
}

// CodeModel is the GORM model for a generated code
type CodeModel struct {
	ID        uint   `gorm:"primaryKey"`
	Symbology string `gorm:"not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
	Renders   uint
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string, cacheObj *cache.NamespaceLRU) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&CodeModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db, cache: cacheObj}, nil
}

// Store persists a generated code to the database
func (r *SQLiteRepository) Store(ctx context.Context, code *generator.Code) error {
	model := CodeModel{
		Symbology: code.Symbology,
		Content:   code.Content,
		CreatedAt: code.CreatedAt,
		Renders:   code.Renders,
	}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: code.Symbology,
				constant.DataContent:   code.Content,
			},
		})
		return result.Error
	}

	code.ID = model.ID

	appLogger.CtxInfo(ctx, "Code stored successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataCodeID:    code.ID,
			constant.DataSymbology: code.Symbology,
		},
	})

	return nil
}

// FindByID retrieves a code by its id
func (r *SQLiteRepository) FindByID(ctx context.Context, id uint) (*generator.Code, error) {
	var model CodeModel

	appLogger.CtxDebug(ctx, "Looking up code", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFindByID,
		Data: map[string]interface{}{
			constant.DataCodeID: id,
		},
	})

	rows, err := r.db.WithContext(ctx).Raw(`SELECT id, symbology, content, created_at, renders FROM code_models WHERE id = ? LIMIT 1`, id).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		appLogger.CtxInfo(ctx, "Code not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return nil, errors.New(constant.ErrCodeNotFound)
	}

	if err := r.db.ScanRows(rows, &model); err != nil {
		appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBScanRows,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return nil, err
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return nil, err
	}

	return modelToCode(&model), nil
}

// ListRecent retrieves the most recently created codes
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*generator.Code, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []CodeModel
	err := r.db.WithContext(ctx).Raw(`SELECT id, symbology, content, created_at, renders FROM code_models ORDER BY id DESC LIMIT ?`, limit).Scan(&models).Error
	if err != nil {
		appLogger.CtxError(ctx, "Database error while listing codes", appLogger.LoggerInfo{
			ContextFunction: constant.CtxList,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBList,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}

	codes := make([]*generator.Code, 0, len(models))
	for i := range models {
		codes = append(codes, modelToCode(&models[i]))
	}

	appLogger.CtxDebug(ctx, "Codes listed", appLogger.LoggerInfo{
		ContextFunction: constant.CtxList,
		Data: map[string]interface{}{
			constant.DataCount: len(codes),
		},
	})

	return codes, nil
}

// IncrementRenders increments the render count for a code
func (r *SQLiteRepository) IncrementRenders(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Exec(`UPDATE code_models SET renders = renders + 1 WHERE id = ?`, id)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to increment render count", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIncrementRenders,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBIncrement,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		appLogger.CtxWarn(ctx, "No rows affected when incrementing renders", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIncrementRenders,
			Data: map[string]interface{}{
				constant.DataCodeID: id,
			},
		})
		return errors.New(constant.ErrCodeNotFound)
	}

	// Keep the cached record in step with the counter
	key := strconv.FormatUint(uint64(id), 10)
	if val, found := r.cache.Get(constant.CodeNamespace, key); found {
		if code, ok := val.(*generator.Code); ok {
			code.Renders++
			r.cache.Set(constant.CodeNamespace, key, code)
		}
	}

	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}

func modelToCode(model *CodeModel) *generator.Code {
	return &generator.Code{
		ID:        model.ID,
		Symbology: model.Symbology,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
		Renders:   model.Renders,
	}
}
