package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrDuplicateEmail     ErrCode = "DUPLICATE_EMAIL"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrCourseNotFound  ErrCode = "COURSE_NOT_FOUND"
	ErrCommentNotFound ErrCode = "COMMENT_NOT_FOUND"
	ErrAlreadyEnrolled ErrCode = "ALREADY_ENROLLED"

	// ─── Contact ───────────────────────────────────────────────────────
	ErrContactFailed ErrCode = "CONTACT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrDuplicateEmail:
		return "Email sudah terdaftar."
	case ErrUserNotFound:
		return "Email tidak ditemukan."
	case ErrInvalidCredentials:
		return "Password salah."
	case ErrTokenRequired:
		return "Tidak ada token, akses ditolak."
	case ErrTokenInvalid:
		return "Token tidak valid."

	case ErrForbidden:
		return "Tidak diizinkan."
	case ErrAdminAccessOnly:
		return "Akses ditolak: Anda bukan admin."

	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."

	case ErrNotFound:
		return "User tidak ditemukan."
	case ErrCourseNotFound:
		return "Kursus tidak ditemukan."
	case ErrCommentNotFound:
		return "Komentar tidak ditemukan."
	case ErrAlreadyEnrolled:
		return "Anda sudah mengikuti kursus ini."

	case ErrContactFailed:
		return "Gagal mengirim pesan."

	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
