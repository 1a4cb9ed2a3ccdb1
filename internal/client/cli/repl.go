package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Health(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// Command errors are printed and the loop continues. It returns on EOF or
// "exit" / "quit".
//
//	Not logged in: help, register, login, health, exit
//	Logged in:     help, dashboard, list, add [title], done <id>,
//	               delete <id>, health, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "tk %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: dashboard, (l)ist, add [title], done <id>, delete <id>, health, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, health, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "health":
			cmdErr = a.Health(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case "dashboard", "l", "list", "add", "done", "delete", "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Please log in first")
				continue
			}
			cmdErr = dispatchAuthed(ctx, a, cmd, args)

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func dispatchAuthed(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "dashboard":
		return a.Dashboard(ctx)
	case "l", "list":
		return a.List(ctx)
	case "add":
		return a.Add(ctx, args)
	case "done":
		return a.Done(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
