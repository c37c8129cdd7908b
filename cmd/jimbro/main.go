package main

import "jimbro/cmd/jimbro/root"

func main() {
	root.Execute()
}
