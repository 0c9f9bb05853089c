// Command starward prints Sun, Moon and target visibility for an observer
// and runs a live sky dashboard in the terminal.
package main

func main() {
	Execute()
}
