package main

import "qasmc/cmd"

func main() {
	cmd.Execute()
}
