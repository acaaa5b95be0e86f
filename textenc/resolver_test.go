package textenc

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestResolverResolve(t *testing.T) {
	res, err := NewResolver(0)
	if err != nil {
		t.Fatalf("NewResolver unexpected error: %v", err)
	}

	first, err := res.Resolve("windows-1251")
	if err != nil {
		t.Fatalf("Resolve unexpected error: %v", err)
	}
	second, err := res.Resolve("WINDOWS-1251")
	if err != nil {
		t.Fatalf("Resolve unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the cached encoding instance on the second lookup")
	}
}

func TestResolverUnknown(t *testing.T) {
	res, err := NewResolver(4)
	if err != nil {
		t.Fatalf("NewResolver unexpected error: %v", err)
	}
	if _, err := res.Resolve("klingon-1"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Resolve error = %v, want ErrUnknownEncoding", err)
	}
}

func TestResolversAreIndependent(t *testing.T) {
	a, err := NewResolver(2)
	if err != nil {
		t.Fatalf("NewResolver unexpected error: %v", err)
	}
	b, err := NewResolver(2)
	if err != nil {
		t.Fatalf("NewResolver unexpected error: %v", err)
	}
	if a.cache == b.cache {
		t.Error("resolvers share a cache")
	}
}

func TestResolverNewReader(t *testing.T) {
	res, err := NewResolver(0)
	if err != nil {
		t.Fatalf("NewResolver unexpected error: %v", err)
	}
	src := bytes.NewReader([]byte{0xE9})
	r, err := res.NewReader(src, "latin1", false)
	if err != nil {
		t.Fatalf("NewReader unexpected error: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll unexpected error: %v", err)
	}
	if string(got) != "é" {
		t.Errorf("decoded = %q, want %q", got, "é")
	}
}
