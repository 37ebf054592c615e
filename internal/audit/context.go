package audit

import "context"

type ctxKey struct{}

// WithRequestID amarra o id de correlação da requisição ao
// contexto; os usecases o recuperam na hora de auditar.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

func RequestIDFromContext(ctx context.Context) string {
	if rid, ok := ctx.Value(ctxKey{}).(string); ok {
		return rid
	}
	return ""
}
