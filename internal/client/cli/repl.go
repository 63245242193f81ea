package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub. args are the words after the command.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Portrait(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, reset, exit"
	helpLoggedIn  = "Available commands: (l)ist, show <id>, add, update <id>, delete <id>, portrait upload|download <id> [file], reset, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Character commands need a session. Handlers report their own errors, so
// the loop ignores the returned values. It stops on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rpg %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "l", "list", "show", "add", "update", "delete", "portrait", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			dispatchCharacterCommand(ctx, a, cmd, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchCharacterCommand(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "l", "list":
		_ = a.List(ctx)
	case "show":
		_ = a.Show(ctx, args)
	case "add":
		_ = a.Add(ctx)
	case "update":
		_ = a.Update(ctx, args)
	case "delete":
		_ = a.Delete(ctx, args)
	case "portrait":
		_ = a.Portrait(ctx, args)
	case "logout":
		_ = a.Logout(ctx)
	}
}
