package main

import "stackplan/cmd"

func main() {
	cmd.Execute()
}
