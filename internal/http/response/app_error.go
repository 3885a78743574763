package response

// AppError 接口错误：状态码、类别与对外文案，Err 只用于日志
type AppError struct {
	Code    int
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 创建接口错误，kind 为空时按状态码推断
func NewAppError(code int, kind Kind, message string, err error) *AppError {
	if kind == "" {
		kind = KindForCode(code)
	}
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
