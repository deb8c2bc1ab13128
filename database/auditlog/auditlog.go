package auditlog

// Operation log for RPC mutations and out-of-contract conditions. Writes are
// best-effort: a failed log insert is reported to stderr, never propagated
// to the caller.

import (
	"log"

	"github.com/schmilblick-org/violetear-coordinator/database/dbcore"
	"github.com/schmilblick-org/violetear-coordinator/database/models"
)

const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Log records one entry tied to an RPC call.
func Log(db *dbcore.DB, traceID, method, message, level string) {
	entry := &models.OperationLog{
		TraceID: traceID,
		Method:  method,
		Message: message,
		Level:   level,
	}
	if err := db.Gorm().Create(entry).Error; err != nil {
		log.Printf("operation log write failed (method=%s trace=%s): %v", method, traceID, err)
	}
}

// Event records an entry with no originating call.
func Event(db *dbcore.DB, level, method, message string) {
	Log(db, "", method, message, level)
}
