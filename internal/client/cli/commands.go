package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage")

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, name, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}
	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.api.Logout()
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	msg, err := a.api.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListTodos(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No todos")
		return nil
	}
	for _, t := range items {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %d  %s", mark, t.ID, t.Title)
		if t.Description != nil && *t.Description != "" {
			line += "  (" + *t.Description + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Add creates a todo. The title comes from args or, if empty, a prompt.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
			return err
		}
	}
	desc, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	var description *string
	if desc != "" {
		description = &desc
	}

	item, err := a.api.AddTodo(ctx, title, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added #%d\n", item.ID)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	id, err := parseID(args, "done <id>")
	if err != nil {
		return err
	}
	if _, err := a.api.CompleteTodo(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Completed #%d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	if err := a.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	return nil
}

// Health asks the gRPC endpoint whether the server is serving. Once logged
// in it checks the API service itself, which the server only answers for a
// valid token.
func (a *App) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	var service string
	if a.isLoggedIn() {
		service = common.HealthServiceName
	}

	st, err := a.health.Check(ctx, service)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server status:", st)
	return nil
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	return id, nil
}
