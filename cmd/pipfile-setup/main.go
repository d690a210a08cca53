package main

import "github.com/oshokin/pipfile-setup/cmd/pipfile-setup/cmd"

func main() {
	cmd.Execute()
}
