package env

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// PodName example: k8ssta-nftcarousel-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env") into the process
// environment without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
