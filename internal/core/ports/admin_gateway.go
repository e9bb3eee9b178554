package ports

import "context"

// Principal is an authenticated operator.
type Principal struct {
	Subject string
}

// AdminGateway decides whether a bearer credential belongs to an operator.
// Rejections are AuthorizationErrors.
type AdminGateway interface {
	Authorize(ctx context.Context, bearerToken string) (Principal, error)
}
