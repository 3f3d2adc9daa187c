package service

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store/storetest"
)

const (
	testSession  = "s1"
	testCustomer = "0812345678"
)

type (
	setupFunc    func(context.Context, ...domain.Line) (*storetest.Memory, *CartService)
	teardownFunc func()
)

func mustOwner(t *testing.T, owner domain.Owner, err error) domain.Owner {
	t.Helper()
	if err != nil {
		t.Fatalf("failed creating owner with error: %s", err)
	}
	return owner
}

func sessionOwner(t *testing.T) domain.Owner {
	owner, err := domain.SessionOwner(testSession)
	return mustOwner(t, owner, err)
}

func customerOwner(t *testing.T) domain.Owner {
	owner, err := domain.CustomerOwner(testCustomer)
	return mustOwner(t, owner, err)
}

func newCatalog() *storetest.Catalog {
	return storetest.NewCatalog().
		AddProduct(
			domain.Product{ID: 1, Name: "Keripik Pedas", Image: "keripik.png"},
			map[string]decimal.Decimal{
				"M": decimal.NewFromInt(35000),
				"L": decimal.NewFromInt(42000),
			},
		).
		AddProduct(
			domain.Product{ID: 2, Name: "Makaroni", Image: "makaroni.png"},
			map[string]decimal.Decimal{"L": decimal.NewFromInt(25000)},
		).
		AddProduct(domain.Product{ID: 3, Name: "Basreng", Image: "basreng.png"}, nil)
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

// setup builds a service over an in-memory store seeded with lines and no cache.
func setup(t *testing.T) setupFunc {
	return func(c context.Context, seed ...domain.Line) (*storetest.Memory, *CartService) {
		t.Helper()
		memory := storetest.NewMemory()
		memory.Seed(seed...)
		catalog := newCatalog()
		return memory, NewCartService(memory, catalog, catalog, nil)
	}
}

// setupRedis starts a redis container and returns a client for it.
func setupRedis(t *testing.T, c context.Context) (*redis.Client, teardownFunc) {
	t.Helper()
	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	return redisClient, func() {
		redisClient.Close()
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}

func quantities(lines []domain.Line) map[domain.Variant]int32 {
	result := map[domain.Variant]int32{}
	for _, line := range lines {
		result[line.Variant] += line.Quantity
	}
	return result
}

func linesOf(lines []domain.Line, owner domain.Owner) []domain.Line {
	result := []domain.Line{}
	for _, line := range lines {
		if line.Owner == owner {
			result = append(result, line)
		}
	}
	return result
}
