package contracts

import "errors"

// Error taxonomy shared by every pipeline stage
// ⭐ SSOT: 파이프라인 오류 분류는 여기서만 정의
var (
	// ErrInvalidSpecifier is returned for a malformed or unknown sample specifier.
	// It is raised before any network access.
	ErrInvalidSpecifier = errors.New("invalid sample specifier")

	// ErrDataSourceUnavailable marks an unreachable or unusable universe or series endpoint.
	ErrDataSourceUnavailable = errors.New("data source unavailable")

	// ErrComputationUndefined marks a return that cannot be computed
	// (empty series, fewer than two periods, non-finite result).
	ErrComputationUndefined = errors.New("computation undefined")

	// ErrPersistenceFailure marks a failed write or read of a result file.
	ErrPersistenceFailure = errors.New("persistence failure")
)
