package main

import "github.com/tabfuse/tabfuse/cmd"

func main() {
	cmd.Execute()
}
