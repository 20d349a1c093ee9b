// Command pmctl watches and simulates the power-management back end
package main

import "github.com/tebeka/atexit"

func main() {
	Execute()
	atexit.Exit(0)
}
