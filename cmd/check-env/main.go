package main

import (
	"fmt"
	"os"

	"custodia360/config"

	"github.com/joho/godotenv"
)

// check-env prints which environment variables the application reads are
// present, without showing their values. Useful before a deploy.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, checking system environment only")
	}

	fmt.Println("=== Environment check ===")
	missing := 0
	for _, key := range config.Keys() {
		if os.Getenv(key) == "" {
			fmt.Printf("  MISSING  %s\n", key)
			missing++
		} else {
			fmt.Printf("  SET      %s\n", key)
		}
	}

	fmt.Println()
	if missing > 0 {
		fmt.Printf("%d variable(s) not set (defaults will apply where defined)\n", missing)
		return
	}
	fmt.Println("All variables set")
}
