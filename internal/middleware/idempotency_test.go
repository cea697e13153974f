package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/simplebank/simplebank/internal/logging"
)

func setupIdempotencyApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	logger := logging.Discard()
	app.Use(Idempotency(cache, time.Minute, logger))

	var hits atomic.Int64
	app.Post("/transfer", func(c *fiber.Ctx) error {
		hits.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"hits": hits.Load()})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, &hits, cleanup
}

func postTransfer(t *testing.T, app *fiber.App, key string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/transfer", strings.NewReader("{}"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyHeaderIsOptional(t *testing.T) {
	app, hits, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if status, _ := postTransfer(t, app, ""); status != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("requests without a key must not be deduplicated, handler ran %d times", hits.Load())
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, hits, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	status, first := postTransfer(t, app, "abc")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	status, second := postTransfer(t, app, "abc")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 replay, got %d", status)
	}

	if hits.Load() != 1 {
		t.Fatalf("handler must run once per key, ran %d times", hits.Load())
	}

	var a, b map[string]any
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if a["hits"] != b["hits"] {
		t.Fatalf("replayed body differs: %v vs %v", a, b)
	}
}

func TestIdempotencySeparateKeys(t *testing.T) {
	app, hits, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	postTransfer(t, app, "k1")
	postTransfer(t, app, "k2")

	if hits.Load() != 2 {
		t.Fatalf("distinct keys must not collide, handler ran %d times", hits.Load())
	}
}
