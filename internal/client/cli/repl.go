package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	AuthURL(ctx context.Context) error
	ExchangeSession(ctx context.Context, sessionID string) error
	Courses(ctx context.Context, search string) error
	Course(ctx context.Context, id string) error
	Enroll(ctx context.Context, courseID string) error
	My(ctx context.Context) error
	Create(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the LearningX CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help            — show available commands
//	  - register        — create an account
//	  - login           — authenticate
//	  - authurl         — print the external sign-in URL
//	  - session <id>    — complete an external sign-in
//	  - courses [term]  — browse the catalog
//	  - course <id>     — show a course
//	  - exit | quit     — leave the program
//
//	Signed in, additionally:
//	  - whoami          — show the current identity
//	  - enroll <id>     — enroll in a course
//	  - my              — list enrollments with progress
//	  - create          — create a course interactively
//	  - logout          — sign out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lx> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, courses, course, enroll, my, create, logout, exit")
			} else {
				printlnFn("Available commands: register, login, authurl, session, courses, course, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "authurl":
			_ = a.AuthURL(ctx)

		case "session":
			_ = a.ExchangeSession(ctx, arg)

		case "whoami":
			_ = a.Whoami(ctx)

		case "c", "courses":
			_ = a.Courses(ctx, strings.Join(args, " "))

		case "course":
			_ = a.Course(ctx, arg)

		case "enroll":
			_ = a.Enroll(ctx, arg)

		case "my":
			_ = a.My(ctx)

		case "create":
			_ = a.Create(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
