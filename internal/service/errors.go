package service

type ErrorCode string

const (
	ErrorCodeInvalidBody   ErrorCode = "INVALID_BODY"
	ErrorCodeCaptchaFailed ErrorCode = "CAPTCHA_FAILED"
	ErrorCodeInvalidUpload ErrorCode = "INVALID_UPLOAD"
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrorCodeUnspecified   ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}
