package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printFn is a test seam for the prompt and REPL messages.
var printFn = fmt.Print

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Token(ctx context.Context) error
	Tabs(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop ends on EOF, on "exit" or "quit", or when ctx is cancelled.
//
// The prompt shows statusFn() and accepts:
//
//	help          show available commands
//	login         authenticate
//	logout        drop the session
//	me            get my info
//	users         get all users info
//	go <path>     navigate ("/" or "/login")
//	tabs          show the navigation bar
//	token         show the stored token's claims
//	exit | quit   leave the program
//
// Errors returned by handlers are not printed here; handlers report to the
// user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("jwtdash %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printFn("\n")
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printFn("Available commands: me, users, go <path>, tabs, token, logout, exit\n")
			} else {
				printFn("Available commands: login, go <path>, tabs, token, exit\n")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "users":
			_ = a.Users(ctx)

		case "go":
			if len(args) == 0 {
				printFn("Usage: go <path>\n")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "tabs":
			_ = a.Tabs(ctx)

		case "token":
			_ = a.Token(ctx)

		case "exit", "quit":
			printFn("Bye!\n")
			return

		default:
			printFn(fmt.Sprintf("Unknown command: %s\n", cmd))
		}
	}
}
