package main

import (
	"log"

	"monkeyclicker/internal/server"
)

func main() {
	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
