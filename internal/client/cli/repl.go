package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Submit(ctx context.Context) error
	ToggleMode()

	Status(ctx context.Context) error
	Generate(ctx context.Context, prompt string) error
	Show(ctx context.Context) error
	Export(ctx context.Context, arg string) error
	Preview(ctx context.Context) error
	Publish(ctx context.Context) error
	Logout(ctx context.Context) error

	Users(ctx context.Context) error
	SetBalance(ctx context.Context, args []string) error
	AddEnergy(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The set of accepted commands depends on whether a session exists and
// whether its user is an admin:
//
//	Not logged in:
//	  - login | register   — authenticate in that mode
//	  - mode               — switch the form between login and registration
//	  - auth               — authenticate in the current form mode
//
//	Logged in:
//	  - status             — show the dashboard
//	  - generate [text]    — create a site from a description
//	  - show               — print the latest site markup
//	  - export [path]      — save the latest site to a file
//	  - preview            — serve the latest site on localhost
//	  - publish            — upload the latest site and print a link
//	  - logout             — end the session
//
//	Admins additionally:
//	  - users                    — list users
//	  - setbalance <id> <value>  — overwrite a balance
//	  - addenergy <id> <delta>   — add to a balance
//
// help, exit and quit work in every state. Handler errors are ignored here;
// handlers report them to the user themselves. The loop exits on EOF, on
// exit/quit or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("sitegen (%s) > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn(), a.isAdmin()))
			continue
		case "exit", "quit":
			printlnFn("Пока!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "login":
				_ = a.Login(ctx)
			case "register":
				_ = a.Register(ctx)
			case "mode":
				a.ToggleMode()
			case "auth":
				_ = a.Submit(ctx)
			default:
				printlnFn("Неизвестная команда:", cmd, "(сначала войдите, см. help)")
			}
			continue
		}

		switch cmd {
		case "status":
			_ = a.Status(ctx)
		case "generate", "gen":
			_ = a.Generate(ctx, strings.Join(args, " "))
		case "show":
			_ = a.Show(ctx)
		case "export":
			_ = a.Export(ctx, strings.Join(args, " "))
		case "preview":
			_ = a.Preview(ctx)
		case "publish":
			_ = a.Publish(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "users", "setbalance", "addenergy":
			if !a.isAdmin() {
				printlnFn("Неизвестная команда:", cmd)
				continue
			}
			switch cmd {
			case "users":
				_ = a.Users(ctx)
			case "setbalance":
				_ = a.SetBalance(ctx, args)
			case "addenergy":
				_ = a.AddEnergy(ctx, args)
			}
		default:
			printlnFn("Неизвестная команда:", cmd)
		}
	}
}
