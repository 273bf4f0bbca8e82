package main

import "github.com/hsuan0717/health/cmd/health/root"

func main() {
	root.Execute()
}
