package document

import (
	"reflect"
	"sync"
	"testing"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := NewStore()
	if replaced := s.Put(Document{ID: "a", Name: "a.txt", Text: "hello"}); replaced {
		t.Error("first Put should not report a replacement")
	}
	if replaced := s.Put(Document{ID: "a", Name: "a.txt", Text: "hello again"}); !replaced {
		t.Error("second Put should report a replacement")
	}

	doc, ok := s.Get("a")
	if !ok {
		t.Fatal("expected document a")
	}
	if doc.Size != len("hello again") {
		t.Errorf("expected size %d, got %d", len("hello again"), doc.Size)
	}
	if doc.AddedAt.IsZero() {
		t.Error("expected AddedAt to be set")
	}

	text, ok := s.Lookup("a")
	if !ok || text != "hello again" {
		t.Errorf("Lookup returned %q, %v", text, ok)
	}

	if !s.Delete("a") {
		t.Error("expected Delete to report existing document")
	}
	if s.Delete("a") {
		t.Error("expected second Delete to report missing document")
	}
	if _, ok := s.Lookup("a"); ok {
		t.Error("expected document to be gone")
	}
}

func TestStore_ListSorted(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"c", "a", "b"} {
		s.Put(Document{ID: id})
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("expected sorted ids, got %v", got)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 documents, got %d", s.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			s.Put(Document{ID: id, Text: id})
			s.Lookup(id)
			s.List()
		}(i)
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("expected 20 documents, got %d", s.Len())
	}
}

func TestSet_Lookup(t *testing.T) {
	set := Set{"x": "text"}
	if text, ok := set.Lookup("x"); !ok || text != "text" {
		t.Errorf("unexpected lookup result %q, %v", text, ok)
	}
	if _, ok := set.Lookup("y"); ok {
		t.Error("expected missing id")
	}
}

func TestIDFor(t *testing.T) {
	a := IDFor([]byte("hello world"))
	if a != "b94d27b9934d3e08" {
		t.Errorf("unexpected id %q", a)
	}
	if IDFor([]byte("other")) == a {
		t.Error("expected different ids for different content")
	}
}
