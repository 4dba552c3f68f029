package middleware

import "context"

// subjectKey holds the report subject: the token's sub claim, or AnonymousUserID
// when authentication is disabled.
const subjectKey = contextKey("subject")

// WithSubject returns a copy of ctx carrying the report subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the subject AuthMiddleware recorded for the request.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
