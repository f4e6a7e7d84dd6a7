package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider reads key=value configuration files through the godotenv
// framework. The per-source policy files use this format.
type GodotenvProvider struct{}

// Read parses the given files into a single map (map[key]value).
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	data, err := godotenv.Read(filenames...)
	if err != nil {
		return data, fmt.Errorf("(config-godotenv) %w", err)
	}

	return data, nil
}
