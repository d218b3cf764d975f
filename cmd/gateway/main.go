package main

import (
	"fmt"
	"os"

	"github.com/metinatakli/cinex-booking/internal/gateway"
)

func main() {
	err := gateway.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}
}
