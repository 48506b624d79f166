package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestPutGet(t *testing.T) {
	kv := openTemp(t)

	if err := kv.Put(map[string]string{"token": "t1", "user": `{"id":1}`}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := kv.Get("token")
	if err != nil || v != "t1" {
		t.Fatalf("Get(token) = %q, %v; want t1", v, err)
	}

	got, err := kv.GetMany("token", "user", "missing")
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 || got["user"] != `{"id":1}` {
		t.Fatalf("GetMany = %v", got)
	}
}

func TestGetMissing(t *testing.T) {
	kv := openTemp(t)
	if _, err := kv.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	kv := openTemp(t)
	_ = kv.Put(map[string]string{"a": "1", "b": "2", "c": "3"})

	if err := kv.Delete("a", "b", "zzz"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	n, err := kv.Count()
	if err != nil || n != 1 {
		t.Fatalf("Count = %d, %v; want 1", n, err)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	kv, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = kv.Put(map[string]string{"token": "persisted"})
	_ = kv.Close()

	kv, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = kv.Close() }()
	if v, _ := kv.Get("token"); v != "persisted" {
		t.Fatalf("after reopen token = %q", v)
	}
}
