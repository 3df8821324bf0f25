package interner

import "testing"

func TestInternDeduplicates(t *testing.T) {
	in := New(0)
	h1, err := in.Intern("http://example.org/Student")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	h2, err := in.Intern("http://example.org/Student")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected same handle for identical lexical form, got %d and %d", h1, h2)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	in := New(0)
	lex := "http://example.org/Person"
	h, err := in.Intern(lex)
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	got, ok := in.Resolve(h)
	if !ok {
		t.Fatalf("expected handle to resolve")
	}
	if got != lex {
		t.Fatalf("expected %q, got %q", lex, got)
	}

	// resolve(intern(resolve(h))) == h
	h2, err := in.Intern(got)
	if err != nil {
		t.Fatalf("re-intern failed: %v", err)
	}
	if h2 != h {
		t.Fatalf("expected re-interning to return the same handle")
	}
}

func TestInvalidIRI(t *testing.T) {
	in := New(0)
	if _, err := in.Intern(""); err == nil {
		t.Fatalf("expected error for empty IRI")
	}
	if _, err := in.Intern("http://example.org/has space"); err == nil {
		t.Fatalf("expected error for IRI with whitespace")
	}
}

func TestWithNamespace(t *testing.T) {
	in := New(0)
	h1, err := in.WithNamespace("http://example.org/", "Student")
	if err != nil {
		t.Fatalf("with namespace failed: %v", err)
	}
	h2, err := in.Intern("http://example.org/Student")
	if err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected WithNamespace to produce the same handle as direct Intern")
	}
	if _, err := in.WithNamespace("http://example.org#", "#local"); err == nil {
		t.Fatalf("expected collision error for duplicate separators")
	}
}

func TestWeakReferenceEviction(t *testing.T) {
	in := New(2)
	h1, _ := in.Intern("http://example.org/A")
	in.Release(h1)
	h2, _ := in.Intern("http://example.org/B")
	in.Release(h2)
	// Over the soft limit: interning a third IRI should be able to evict A or B.
	if _, err := in.Intern("http://example.org/C"); err != nil {
		t.Fatalf("intern failed: %v", err)
	}
	if in.Len() > 2 {
		t.Fatalf("expected eviction to bound table size, got %d entries", in.Len())
	}
}

func TestDuplicateInsertDoesNotPanic(t *testing.T) {
	in := New(0)
	for i := 0; i < 100; i++ {
		if _, err := in.Intern("http://example.org/Same"); err != nil {
			t.Fatalf("unexpected error on duplicate insert: %v", err)
		}
	}
}
