// Command bitallocctl exercises a bitalloc allocator from the command line.
package main

func main() {
	execute()
}
