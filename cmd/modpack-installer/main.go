package main

import "github.com/oshokin/modpack-installer/cmd/modpack-installer/cmd"

func main() {
	cmd.Execute()
}
