package main

import "gengo-go/cmd"

func main() {
	cmd.Execute()
}
