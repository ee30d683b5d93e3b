// Command pbufctl creates, inspects, and stress-tests payload buffer
// region files from the shell.
package main

func main() {
	execute()
}
