package main

import (
	"os"

	"github.com/ankitkaran99/tinymce-components/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
