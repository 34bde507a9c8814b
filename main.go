package main

import "github.com/ArnaudCalmettes/graybench/cmd"

func main() {
	cmd.Execute()
}
