package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/maseology/mmio"

	drainage "github.com/Samoppakiks/uit-drainage"
)

func main() {

	controlFP := "dausa.dra"
	if len(os.Args) > 1 {
		controlFP = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	if err := drainage.Build(controlFP); err != nil {
		log.Fatalf(" drainage build error: %v", err)
	}
}
