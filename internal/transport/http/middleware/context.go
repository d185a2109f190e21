package middleware

import "context"

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxAuthToken
)

// RequestIDFromContext возвращает request id запроса, если он есть.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRequestID).(string)
	return v, ok && v != ""
}

// TokenFromContext возвращает "сырой" Bearer-токен запроса, если он есть.
func TokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxAuthToken).(string)
	return v, ok && v != ""
}
