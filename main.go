package main

import "github.com/lightningcom/F1-Telemetry-and-match-replay/cmd"

func main() {
	cmd.Execute()
}
