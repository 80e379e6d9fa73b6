package main

import "graalvm-tools/go/graalvm-packager/cmd"

func main() {
	cmd.Execute()
}
