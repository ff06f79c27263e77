package main

import "github.com/SeAkman0/calocam-cli/cmd/calocam"

func main() {
	calocam.Execute()
}
