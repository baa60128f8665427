package config

type Config struct {
	Lexicon map[string][]string `json:"lexicon"`
}
