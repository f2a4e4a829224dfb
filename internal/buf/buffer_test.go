package buf

import (
	"bytes"
	"testing"

	"github.com/joshuapare/utilkit/alloc"
)

func TestBuffer_AppendAndGrow(t *testing.T) {
	c := alloc.NewCounting(nil)
	b, err := NewBuffer(c, 4)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}

	if !b.AppendString("ab") || !b.AppendByte('c') || !b.Append([]byte("defgh")) {
		t.Fatalf("appends should succeed while growth is available")
	}
	if got := b.String(); got != "abcdefgh" {
		t.Fatalf("buffer content = %q, want %q", got, "abcdefgh")
	}
	if b.Len() != 8 {
		t.Fatalf("Len = %d, want 8", b.Len())
	}
	if b.Cap() < 8 {
		t.Fatalf("Cap = %d, should have grown to fit 8 bytes", b.Cap())
	}
	if !bytes.Equal(b.Bytes(), []byte("abcdefgh")) {
		t.Fatalf("Bytes mismatch: %q", b.Bytes())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", b.Len())
	}

	b.Release()
	if !c.Balanced() {
		t.Fatalf("Release should return all bytes: outstanding=%d", c.Stats().OutstandingBytes)
	}
}

func TestBuffer_GrowRefused(t *testing.T) {
	f := alloc.NewFailing(nil)
	b, err := NewBuffer(f, 4)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	defer b.Release()

	if !b.AppendString("abcd") {
		t.Fatalf("append within capacity must not touch the allocator")
	}

	f.FailAfter(0)
	if b.AppendByte('x') {
		t.Fatalf("append past capacity should fail when growth is refused")
	}
	if got := b.String(); got != "abcd" {
		t.Fatalf("refused growth must leave prior content intact, got %q", got)
	}

	f.Disarm()
	if !b.AppendByte('x') {
		t.Fatalf("append should succeed once the allocator is disarmed")
	}
	if got := b.String(); got != "abcdx" {
		t.Fatalf("content = %q, want %q", got, "abcdx")
	}
}

func TestBuffer_InvalidConstruction(t *testing.T) {
	if _, err := NewBuffer(nil, 16); err == nil {
		t.Fatalf("nil allocator should be rejected")
	}
	if _, err := NewBuffer(alloc.Default(), 0); err == nil {
		t.Fatalf("zero capacity should be rejected")
	}

	f := alloc.NewFailing(nil)
	f.FailAfter(0)
	if _, err := NewBuffer(f, 16); err == nil {
		t.Fatalf("refused initial allocation should surface as an error")
	}
}
