package main

import "github.com/leozimmerman/dawInfoSender/cmd"

func main() {
	cmd.Execute()
}
