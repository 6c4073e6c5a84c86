package main

import "casebackend/cmd"

func main() {
	cmd.Execute()
}
