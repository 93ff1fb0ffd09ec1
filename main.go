package main

import "github.com/KostasZigo/kvcs/cmd"

func main() {
	cmd.Execute()
}
