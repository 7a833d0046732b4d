package main

import (
	"os"

	"github.com/metinatakli/movie-catalog/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
