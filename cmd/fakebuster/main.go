package main

import (
	"os"

	"fakebuster/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
