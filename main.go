package main

import "neuroflow/cmd"

func main() {
	cmd.Execute()
}
