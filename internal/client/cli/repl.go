package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/preranah7/archweekly/internal/client/router"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is the command surface the REPL drives. *App implements it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Open(ctx context.Context, path string, args []string) error
	Newsletter(ctx context.Context, args []string) error
	Top(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Health(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
	afterCommand(ctx context.Context)
}

const (
	helpAnonymous = "Commands: home, archive [page], newsletter <id>, top [n], category <name>, subscribe [ref], unsubscribe, login, system-design, go <path>, status, health, reset, exit"
	helpUser      = "Commands: home, archive [page], newsletter <id>, top [n], category <name>, dashboard, system-design [category=..] [difficulty=..] [page=..], go <path>, status, health, logout, reset, exit"
	helpAdmin     = "Admin: admin, admin test [email], admin send, admin trigger, admin sd-update"
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF or on "exit"/"quit". Errors from handlers are reported
// by the handlers themselves; the loop keeps going.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		printFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpAnonymous)
			}
			if a.isAdmin() {
				printlnFn(helpAdmin)
			}

		case "home", "latest":
			_ = a.Open(ctx, router.PathHome, nil)
		case "login":
			_ = a.Open(ctx, router.PathLogin, nil)
		case "subscribe":
			_ = a.Open(ctx, router.PathSubscribe, args)
		case "unsubscribe":
			_ = a.Open(ctx, router.PathUnsubscribe, nil)
		case "archive":
			_ = a.Open(ctx, router.PathArchive, args)
		case "dashboard":
			_ = a.Open(ctx, router.PathDashboard, nil)
		case "admin":
			_ = a.Open(ctx, router.PathAdmin, args)
		case "sd", "system-design":
			_ = a.Open(ctx, router.PathSystemDesign, args)
		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Open(ctx, args[0], args[1:])

		case "newsletter":
			_ = a.Newsletter(ctx, args)
		case "top":
			_ = a.Top(ctx, args)
		case "category":
			_ = a.Category(ctx, args)
		case "status", "whoami":
			_ = a.Status(ctx)
		case "health":
			_ = a.Health(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.afterCommand(ctx)
	}
}
