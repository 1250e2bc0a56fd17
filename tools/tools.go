package tools

import "fmt"

const version = "0.9.1"

// PrintVersion prints the build version on the console.
func PrintVersion() {
	fmt.Printf("ivmfolio version %s\n", version)
}
