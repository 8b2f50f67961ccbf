package main

import (
	"log"

	"SimpleCAD/internal/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Println("Starting SimpleCAD")
	ui.RunApp()
}
