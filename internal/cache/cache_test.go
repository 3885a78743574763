package cache

import (
	"context"
	"testing"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetOrderTracking(ctx, "ORD-2601-00001", map[string]string{"status": "pending"}); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	var dest map[string]string
	hit, err := GetOrderTracking(ctx, "ORD-2601-00001", &dest)
	if err != nil || hit {
		t.Fatalf("expected miss without error, hit=%v err=%v", hit, err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping should be noop: %v", err)
	}
}

func TestOrderTrackingKeyIsCaseInsensitive(t *testing.T) {
	if orderTrackingKey(" ord-2601-00001 ") != orderTrackingKey("ORD-2601-00001") {
		t.Fatalf("tracking key should normalize order number")
	}
}

func TestBuildKeyUsesDefaultPrefix(t *testing.T) {
	redisPrefix = ""
	if got := BuildKey("rate:checkout"); got != "bz:rate:checkout" {
		t.Fatalf("unexpected key: %s", got)
	}
}
