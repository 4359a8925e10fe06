package main

import "github.com/schovi/mdsh/cmd"

func main() {
	cmd.Execute()
}
