package storage

import (
	"context"
	"testing"
)

func TestInMemoryKVRoundTrip(t *testing.T) {
	kv := NewInMemoryKV()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); err != ErrKeyNotFound {
		t.Errorf("Get(missing) err = %v, want ErrKeyNotFound", err)
	}

	if err := kv.Set(ctx, "cart:abc", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "cart:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Get = %s", got)
	}

	if err := kv.Delete(ctx, "cart:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "cart:abc"); err != ErrKeyNotFound {
		t.Errorf("Get after delete err = %v, want ErrKeyNotFound", err)
	}
}

func TestInMemoryKVCopiesValues(t *testing.T) {
	kv := NewInMemoryKV()
	ctx := context.Background()

	buf := []byte("original")
	if err := kv.Set(ctx, "k", buf); err != nil {
		t.Fatalf("Set: %v", err)
	}
	buf[0] = 'X'

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated through caller's slice: %s", got)
	}

	got[0] = 'Y'
	again, _ := kv.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %s", again)
	}
}
