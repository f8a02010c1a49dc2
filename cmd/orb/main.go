package main

import "orb/internal/engine"

func main() {
	engine.RunDesktop()
}
