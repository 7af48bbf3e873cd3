package main

import (
	"os"

	"github.com/coverlay/coverlay/cmd/coverlay/app"
)

func main() {
	if err := app.NewCoverlayCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
