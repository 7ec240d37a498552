package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnknownCommand = errors.New("unknown command")

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.Email)
}

// Root runs the interactive prompt until exit or end of input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gymctl (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "gymctl %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return
			case "help":
				a.help()
			default:
				if err := a.exec(ctx, parts[0]); err != nil && errors.Is(err, errUnknownCommand) {
					fmt.Fprintln(a.out, "Unknown command:", parts[0])
				}
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
			return
		}
	}
}

func (a *App) help() {
	if a.isSignedIn() {
		fmt.Fprintln(a.out, "Available commands: me, changepass, cancel, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: signup, signin, changepass, cancel, exit")
	}
}

// exec runs one command. Failures are reported to the user and returned.
func (a *App) exec(ctx context.Context, cmd string) error {
	var err error
	switch cmd {
	case "signup":
		err = a.SignUp(ctx)
	case "signin", "login":
		err = a.SignIn(ctx)
	case "me":
		err = a.Me(ctx)
	case "changepass":
		err = a.ChangePassword(ctx)
	case "cancel":
		err = a.Cancel(ctx)
	case "logout":
		a.Logout(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
	if err != nil {
		fmt.Fprintf(a.out, "%s\n", describe(err))
	}
	return err
}
