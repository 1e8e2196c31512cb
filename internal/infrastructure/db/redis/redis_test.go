package redis

import "testing"

func TestConfigOptions(t *testing.T) {
	cfg := Config{Addr: "redis:6379", Password: "hunter2", DB: 3, PoolSize: 20}

	opts := cfg.options()
	if opts.Addr != "redis:6379" || opts.Password != "hunter2" || opts.DB != 3 {
		t.Fatalf("connection settings not forwarded: %+v", opts)
	}
	if opts.PoolSize != 20 {
		t.Fatalf("expected pool size 20, got %d", opts.PoolSize)
	}
}

func TestConfigOptions_PoolSizeDefault(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()

	// Zero means the driver picks its own default.
	if opts.PoolSize != 0 {
		t.Fatalf("expected driver-default pool size, got %d", opts.PoolSize)
	}
}
