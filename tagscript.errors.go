package tagscript

import (
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// NewBlockProcessError wraps a block malfunction with the offending node's
// identity and source span. Distinct from a block merely declining a tag,
// which is not an error at all.
func NewBlockProcessError(blockName, verb, source string, offset int, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeProcess, ErrMsgBlockFailed).
		WithMetadata(MetaKeyBlock, blockName).
		WithMetadata(MetaKeyVerb, verb).
		WithMetadata(MetaKeySource, source).
		WithMetadata(MetaKeyOffset, strconv.Itoa(offset))
}

// NewNilBlockError reports a nil block handed to an interpreter.
func NewNilBlockError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgNilBlock)
}

// NewStorageClosedError reports an operation on a closed storage backend.
func NewStorageClosedError() error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgStorageClosed)
}

// NewScriptNotFoundError reports a missing stored script.
func NewScriptNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyName, ErrMsgScriptNotFound).
		WithMetadata(MetaKeyName, name)
}

// NewScriptNameEmptyError reports a stored script without a name.
func NewScriptNameEmptyError() error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgScriptNameEmpty)
}

// NewUnknownDriverError reports a storage driver that was never registered.
func NewUnknownDriverError(driver string) error {
	return cuserr.NewNotFoundError(MetaKeyDriver, ErrMsgStorageDriver).
		WithMetadata(MetaKeyDriver, driver)
}

// NewStorageError wraps a backend failure with the failing operation message.
func NewStorageError(msg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeStorage, msg)
}

// NewDocumentError wraps a script document parse or export failure.
func NewDocumentError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
}

// NewActionNameEmptyError reports an action lookup with an empty name.
func NewActionNameEmptyError() error {
	return cuserr.NewValidationError(ErrCodeAction, ErrMsgActionNameEmpty)
}

// NewActionNotFoundError reports a lookup of an action that no block recorded.
func NewActionNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyAction, ErrMsgActionNotFound).
		WithMetadata(MetaKeyAction, name)
}

// NewActionDecodeError wraps an action payload decoding failure.
func NewActionDecodeError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeAction, ErrMsgActionDecode).
		WithMetadata(MetaKeyAction, name)
}
