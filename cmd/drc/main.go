// Command drc runs and administers the document registry.
package main

import "os"

func main() {
	os.Exit(Run())
}
