package main

import (
	"os"

	"github.com/cinehall/cinehall/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
