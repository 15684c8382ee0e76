package main

import "github.com/Ravikin/dno-stats/cmd/dnostats/cmd"

func main() {
	cmd.Execute()
}
