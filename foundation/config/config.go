// Package config loads the optional emotion-lexicon configuration file,
// which overrides the built-in keyword tables of the text mood analyzer.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

func GetLexicon(lexiconPath string) (map[string][]string, error) {
	file, err := os.Open(lexiconPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config Config

	if err := json.Unmarshal(bytes, &config); err != nil {
		return nil, err
	}

	if len(config.Lexicon) == 0 {
		return nil, fmt.Errorf("lexicon[%s] defines no emotion categories", lexiconPath)
	}

	lexicon := make(map[string][]string, len(config.Lexicon))

	for category, words := range config.Lexicon {
		category = strings.ToLower(strings.TrimSpace(category))
		if category == "" {
			return nil, fmt.Errorf("lexicon[%s] contains an empty category name", lexiconPath)
		}

		cleaned := make([]string, 0, len(words))
		for _, word := range words {
			word = strings.ToLower(strings.TrimSpace(word))
			if word != "" {
				cleaned = append(cleaned, word)
			}
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("lexicon[%s] category[%s] has no trigger words", lexiconPath, category)
		}

		lexicon[category] = cleaned
	}

	return lexicon, nil
}
