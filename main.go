package main

import (
	"os"

	"sheetform/cmd"
)

// @title        sheetform API
// @version      1.0
// @description  Relays a contact form to a spreadsheet-backed script endpoint. Every client keeps its own form, tracked by the sheetform_session cookie.
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
