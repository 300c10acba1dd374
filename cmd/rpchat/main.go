// Command rpchat is an interactive roleplay chat client.
package main

import "github.com/diogo/rpchat/internal/commands"

func main() {
	commands.Execute()
}
