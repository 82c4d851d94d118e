package server

import "testing"

func TestStaticWordSource(t *testing.T) {
	source := NewStaticWordSource([]string{"پرتقال"})
	for i := 0; i < 10; i++ {
		word, err := source.RandomWord()
		if err != nil {
			t.Fatalf("RandomWord: %v", err)
		}
		if word != "پرتقال" {
			t.Fatalf("word = %q", word)
		}
	}

	if _, err := NewStaticWordSource(nil).RandomWord(); err == nil {
		t.Fatalf("empty pool should error")
	}
}

func TestDefaultWordPool(t *testing.T) {
	if len(defaultWords) == 0 {
		t.Fatalf("built-in pool is empty")
	}
	seen := make(map[string]bool, len(defaultWords))
	for _, word := range defaultWords {
		if word == "" {
			t.Fatalf("empty entry in pool")
		}
		if normalizeGuess(word) == "" {
			t.Fatalf("word %q normalizes to nothing and could never be guessed", word)
		}
		if seen[word] {
			t.Fatalf("duplicate word %q", word)
		}
		seen[word] = true
	}
}
