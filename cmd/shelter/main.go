// Command shelter manages a local catalog of shelter pets.
package main

import "github.com/mesh-intelligence/shelter/internal/cli"

func main() {
	cli.Execute()
}
