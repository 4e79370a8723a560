package main

import "github.com/mouse-blink/coverprobe/cmd"

func main() {
	cmd.Execute()
}
