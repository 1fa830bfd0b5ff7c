package main

import "github.com/oshokin/chess-clock/cmd/chess-clock/cmd"

func main() {
	cmd.Execute()
}
