package main

import "github.com/irixaligned/swat/cmd"

func main() {
	cmd.Execute()
}
