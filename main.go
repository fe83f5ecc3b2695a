package main

import "github.com/alexiusacademia/gorcc/cmd"

func main() {
	cmd.Execute()
}
