package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
)

// Inventory is the persistence port for per-room-type stock. Both the
// hosted Postgres store and the local file store implement it; the ledger
// service is written against this interface only.
type Inventory interface {
	Get(ctx context.Context, roomType string) (available int, found bool, err error)
	Set(ctx context.Context, roomType string, available int) error
	All(ctx context.Context) (map[string]int, error)
}
