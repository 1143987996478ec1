package application

import "context"

// Query is a read against system state. Queries never mutate anything and
// run outside a unit of work.
type Query interface {
	QueryName() string
}

// QueryHandler answers one query type with a result of type R.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
