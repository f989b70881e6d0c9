package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadSessionEnv reads extra session variables from a dotenv file.
// An empty path or a missing file yields no variables.
func LoadSessionEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session env file %s: %w", path, err)
	}
	return vars, nil
}
