package tagscript

import "time"

// Default interpreter limits. Depth bounds recursive resolution of nested
// tags; the character limit bounds cumulative block output ("workload").
// Both overruns are recoverable: the offending tag resolves to its unchanged
// source text.
const (
	DefaultMaxDepth  = 100
	DefaultCharLimit = 0 // 0 = unlimited
)

// DefaultEscapeChar is the escape marker in front of structural characters.
const DefaultEscapeChar = '\\'

// Well-known action names recorded in Response.Actions.
const (
	// ActionStop halts the tree walk after the node that set it.
	ActionStop = "stop"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	ErrMsgBlockFailed      = "block processing failed"
	ErrMsgNilBlock         = "block cannot be nil"
	ErrMsgInterpreterBuild = "interpreter construction failed"

	// Storage errors
	ErrMsgStorageClosed       = "storage is closed"
	ErrMsgScriptNotFound      = "stored script not found"
	ErrMsgScriptNameEmpty     = "script name cannot be empty"
	ErrMsgStorageDriver       = "unknown storage driver"
	ErrMsgStorageOpenFailed   = "storage open failed"
	ErrMsgStorageQueryFailed  = "storage query failed"
	ErrMsgStorageSaveFailed   = "storage save failed"
	ErrMsgStorageDeleteFailed = "storage delete failed"

	// Document errors
	ErrMsgDocumentFrontmatter = "invalid document frontmatter"
	ErrMsgDocumentExport      = "document export failed"

	// Action decoding
	ErrMsgActionNotFound  = "action not recorded"
	ErrMsgActionDecode    = "action payload decode failed"
	ErrMsgActionNameEmpty = "action name cannot be empty"
)

// Error code constants for categorization.
const (
	ErrCodeProcess = "TAGSCRIPT_PROCESS"
	ErrCodeStorage = "TAGSCRIPT_STORAGE"
	ErrCodeConfig  = "TAGSCRIPT_CONFIG"
	ErrCodeAction  = "TAGSCRIPT_ACTION"
)

// Metadata keys attached to structured errors.
const (
	MetaKeyBlock  = "block"
	MetaKeyVerb   = "verb"
	MetaKeySource = "source"
	MetaKeyOffset = "offset"
	MetaKeyName   = "name"
	MetaKeyDriver = "driver"
	MetaKeyAction = "action"
)

// Log message constants.
const (
	LogMsgInterpreterCreated = "interpreter created"
	LogMsgProcessStart       = "interpretation started"
	LogMsgProcessEnd         = "interpretation completed"
	LogMsgProcessCancelled   = "interpretation cancelled"
	LogMsgBlockDispatched    = "block handled tag"
	LogMsgBlockDeclined      = "block declined tag"
	LogMsgBlockError         = "block returned error"
	LogMsgBlockDegraded      = "block error degraded to passthrough"
	LogMsgTagPassthrough     = "no block accepted tag"
	LogMsgDepthExceeded      = "max resolution depth exceeded"
	LogMsgCharLimitExceeded  = "character limit exceeded"
	LogMsgWalkStopped        = "walk stopped by action"
)

// Log field constants.
const (
	LogFieldBlock   = "block"
	LogFieldVerb    = "verb"
	LogFieldDepth   = "depth"
	LogFieldOffset  = "offset"
	LogFieldWork    = "work"
	LogFieldLimit   = "limit"
	LogFieldNodes   = "nodes"
	LogFieldElapsed = "elapsed"
	LogFieldName    = "name"
)

// Postgres storage defaults.
const (
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	PostgresTablePrefix            = "tagscript_"
)

// Storage driver names.
const (
	StorageDriverNameMemory   = "memory"
	StorageDriverNamePostgres = "postgres"
)
