package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailNotConfirmed  ErrCode = "EMAIL_NOT_CONFIRMED"
	ErrAccountInactive    ErrCode = "ACCOUNT_INACTIVE"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrRefreshInvalid     ErrCode = "REFRESH_TOKEN_INVALID"
	ErrLinkInvalid        ErrCode = "LINK_INVALID"
	ErrPasswordUnchanged  ErrCode = "PASSWORD_UNCHANGED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrUserNotFound        ErrCode = "USER_NOT_FOUND"
	ErrCategoryNotFound    ErrCode = "CATEGORY_NOT_FOUND"
	ErrCourseNotFound      ErrCode = "MENU_COURSE_NOT_FOUND"
	ErrScheduleNotFound    ErrCode = "SCHEDULE_NOT_FOUND"
	ErrCourseSchedNotFound ErrCode = "COURSE_SCHEDULE_NOT_FOUND"
	ErrPaymentNotFound     ErrCode = "PAYMENT_METHOD_NOT_FOUND"
	ErrInvoiceNotFound     ErrCode = "INVOICE_NOT_FOUND"
	ErrConflict            ErrCode = "CONFLICT"
	ErrEmailTaken          ErrCode = "EMAIL_TAKEN"
	ErrDependencyExists    ErrCode = "DEPENDENCY_EXISTS"

	// ─── Checkout ──────────────────────────────────────────────────────
	ErrNoCourseSelected     ErrCode = "NO_COURSE_SELECTED"
	ErrDuplicateSelection   ErrCode = "DUPLICATE_SELECTION"
	ErrSelectionNotFound    ErrCode = "SELECTION_NOT_FOUND"
	ErrAlreadyPurchased     ErrCode = "ALREADY_PURCHASED"
	ErrScheduleFull         ErrCode = "SCHEDULE_FULL"
	ErrPaymentMethodInvalid ErrCode = "PAYMENT_METHOD_INVALID"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email atau kata sandi salah."
	case ErrEmailNotConfirmed:
		return "Email belum dikonfirmasi. Silakan cek kotak masuk Anda."
	case ErrAccountInactive:
		return "Akun Anda tidak aktif."
	case ErrTokenRequired:
		return "Token autentikasi diperlukan."
	case ErrTokenInvalid:
		return "Token autentikasi tidak valid."
	case ErrTokenExpired:
		return "Token autentikasi telah kedaluwarsa."
	case ErrRefreshInvalid:
		return "Refresh token tidak valid atau telah kedaluwarsa."
	case ErrLinkInvalid:
		return "Tautan tidak valid atau telah kedaluwarsa."
	case ErrPasswordUnchanged:
		return "Kata sandi baru tidak boleh sama dengan kata sandi lama."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Anda tidak memiliki izin untuk mengakses sumber daya ini."
	case ErrAdminAccessOnly:
		return "Sumber daya ini terbatas untuk administrator."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrUserNotFound:
		return "Pengguna tidak ditemukan."
	case ErrCategoryNotFound:
		return "Kategori tidak ditemukan."
	case ErrCourseNotFound:
		return "Menu course tidak ditemukan."
	case ErrScheduleNotFound:
		return "Jadwal tidak ditemukan."
	case ErrCourseSchedNotFound:
		return "Jadwal course tidak ditemukan."
	case ErrPaymentNotFound:
		return "Metode pembayaran tidak ditemukan."
	case ErrInvoiceNotFound:
		return "Invoice tidak ditemukan."
	case ErrConflict:
		return "Sumber daya sudah ada."
	case ErrEmailTaken:
		return "Email sudah digunakan."
	case ErrDependencyExists:
		return "Data tidak dapat dihapus karena masih digunakan oleh data lain."

	// ─── Checkout ──────────────────────────────────────────────────────
	case ErrNoCourseSelected:
		return "Tidak ada course yang dipilih."
	case ErrDuplicateSelection:
		return "Terdapat jadwal course yang dipilih lebih dari sekali."
	case ErrSelectionNotFound:
		return "Beberapa jadwal course tidak ditemukan."
	case ErrAlreadyPurchased:
		return "Anda sudah membeli beberapa jadwal course ini."
	case ErrScheduleFull:
		return "Beberapa jadwal course sudah penuh."
	case ErrPaymentMethodInvalid:
		return "Metode pembayaran tidak tersedia."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrUnsupportedFile:
		return "Jenis file tidak didukung."
	case ErrFileTooLarge:
		return "Ukuran file melebihi batas."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	case ErrServiceUnavailable:
		return "Layanan sedang tidak tersedia."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
