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
	isAdmin() bool
	Login(ctx context.Context) error
	Guest(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Export(ctx context.Context, id string) error
	AddDossier(ctx context.Context) error
	AddDocument(ctx context.Context, dossierID string) error
	AddImage(ctx context.Context, dossierID string) error
	ImportFiles(ctx context.Context, dossierID string, paths []string) error
	EditDossier(ctx context.Context, id string) error
	EditDocument(ctx context.Context, id string) error
	EditImage(ctx context.Context, id string) error
	DeleteDossier(ctx context.Context, id string) error
	DeleteDocument(ctx context.Context, id string) error
	DeleteImage(ctx context.Context, id string) error
}

const (
	helpGuest = "Available commands: login, guest, list, open <dossier-id>, export <document-id>, status, exit"
	helpAdmin = "Available commands: list, open <dossier-id>, export <document-id>, " +
		"add-dossier, add-document <dossier-id>, add-image <dossier-id>, import-files <dossier-id> <file>..., " +
		"edit-dossier|edit-document|edit-image <id>, delete-dossier|delete-document|delete-image <id>, " +
		"whoami, status, logout, exit"
)

// runREPL starts a read–eval–print loop over the archive commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Reads (list, open, export, status) work in any session, including none at
// all. Mutating commands are dispatched regardless of role; the repositories
// reject them for non-admin sessions, so the loop stays free of access
// logic.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("archive %s> ", statusFn()))
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
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpGuest)
			default:
				printlnFn(helpGuest)
				printlnFn("Log in with 'login' (admin) or browse with 'guest'")
			}

		case "login":
			_ = a.Login(ctx)

		case "guest":
			_ = a.Guest(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			_ = a.Status(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "open":
			if arg == "" {
				printlnFn("Usage: open <dossier-id>")
				continue
			}
			_ = a.Open(ctx, arg)

		case "export":
			if arg == "" {
				printlnFn("Usage: export <document-id>")
				continue
			}
			_ = a.Export(ctx, arg)

		case "add-dossier":
			_ = a.AddDossier(ctx)

		case "add-document":
			_ = a.AddDocument(ctx, arg)

		case "add-image":
			_ = a.AddImage(ctx, arg)

		case "import-files":
			if len(args) < 2 {
				printlnFn("Usage: import-files <dossier-id> <file>...")
				continue
			}
			_ = a.ImportFiles(ctx, args[0], args[1:])

		case "edit-dossier":
			if arg == "" {
				printlnFn("Usage: edit-dossier <id>")
				continue
			}
			_ = a.EditDossier(ctx, arg)

		case "edit-document":
			if arg == "" {
				printlnFn("Usage: edit-document <id>")
				continue
			}
			_ = a.EditDocument(ctx, arg)

		case "edit-image":
			if arg == "" {
				printlnFn("Usage: edit-image <id>")
				continue
			}
			_ = a.EditImage(ctx, arg)

		case "delete-dossier":
			if arg == "" {
				printlnFn("Usage: delete-dossier <id>")
				continue
			}
			_ = a.DeleteDossier(ctx, arg)

		case "delete-document":
			if arg == "" {
				printlnFn("Usage: delete-document <id>")
				continue
			}
			_ = a.DeleteDocument(ctx, arg)

		case "delete-image":
			if arg == "" {
				printlnFn("Usage: delete-image <id>")
				continue
			}
			_ = a.DeleteImage(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
