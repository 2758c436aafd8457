package main

import "github.com/cardlab/cardlab/cmd"

func main() {
	cmd.Execute()
}
