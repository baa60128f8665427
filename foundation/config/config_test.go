package config_test

import (
	"testing"

	"github.com/mindcareapp/goMindcare/foundation/config"
)

const lexiconPath = "testdata/lexicon.json"

func TestGetLexicon(t *testing.T) {
	t.Run("lexicon exists", func(t *testing.T) {
		t.Parallel()
		lexicon, err := config.GetLexicon(lexiconPath)
		if err != nil {
			t.Fatal(err)
		}
		if len(lexicon) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(lexicon))
		}
		if len(lexicon["happy"]) != 3 {
			t.Fatalf("expected 3 happy trigger words, got %d", len(lexicon["happy"]))
		}
	})

	t.Run("lexicon does not exist", func(t *testing.T) {
		t.Parallel()
		_, err := config.GetLexicon("testdata/missing.json")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
