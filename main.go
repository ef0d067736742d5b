// File: dakota/main.go
package main

import "dakota/cmd"

func main() {
	cmd.Execute()
}
