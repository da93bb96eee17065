package config

import "github.com/pelletier/go-toml/v2"

// TOMLParser adapts go-toml to koanf's Parser interface.
type TOMLParser struct{}

func (TOMLParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (TOMLParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return toml.Marshal(o)
}
