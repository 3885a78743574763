package response

// 业务状态码，HTTP 状态统一为 200
const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeUnauthorized       = 401
	CodeForbidden          = 403
	CodeNotFound           = 404
	CodeConflict           = 409
	CodeVerificationFailed = 422
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeUpstream           = 502
)

// Kind 稳定的错误类别，客户端按类别分支，不依赖文案
type Kind string

const (
	KindInvalidRequest     Kind = "invalid_request"
	KindUnauthenticated    Kind = "unauthenticated"
	KindUnauthorized       Kind = "unauthorized"
	KindNotFound           Kind = "not_found"
	KindUnavailable        Kind = "unavailable"
	KindMOQExceeded        Kind = "moq_exceeded"
	KindConflict           Kind = "conflict"
	KindVerificationFailed Kind = "verification_failed"
	KindRateLimited        Kind = "rate_limited"
	KindUpstreamFailure    Kind = "upstream_failure"
	KindInternal           Kind = "internal"
)

// KindForCode 状态码对应的默认错误类别
func KindForCode(code int) Kind {
	switch code {
	case CodeBadRequest:
		return KindInvalidRequest
	case CodeUnauthorized:
		return KindUnauthenticated
	case CodeForbidden:
		return KindUnauthorized
	case CodeNotFound:
		return KindNotFound
	case CodeConflict:
		return KindConflict
	case CodeVerificationFailed:
		return KindVerificationFailed
	case CodeTooManyRequests:
		return KindRateLimited
	case CodeUpstream:
		return KindUpstreamFailure
	default:
		return KindInternal
	}
}
