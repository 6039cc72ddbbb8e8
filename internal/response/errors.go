package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrRunNotFound ErrCode = "RUN_NOT_FOUND"

	// ─── Uploads ───────────────────────────────────────────────────────
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile  ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"
	ErrInvalidDocument  ErrCode = "INVALID_DOCUMENT"
	ErrInvalidRunOption ErrCode = "INVALID_RUN_OPTION"

	// ─── Publishing ────────────────────────────────────────────────────
	ErrPublishFailed ErrCode = "PUBLISH_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "The passphrase is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The resource was not found."
	case ErrRunNotFound:
		return "No processing run exists with this ID."

	// ─── Uploads ───────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Both the roll sheet and the roster files are required."
	case ErrUnsupportedFile:
		return "Only HTML exports (.html, .htm) are supported."
	case ErrFileTooLarge:
		return "The file exceeds the upload size limit."
	case ErrInvalidDocument:
		return "The uploaded document could not be read as HTML."
	case ErrInvalidRunOption:
		return "The run options are not valid."

	// ─── Publishing ────────────────────────────────────────────────────
	case ErrPublishFailed:
		return "The dashboard could not be written to its destination. The previous dashboard was left unchanged."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
