package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if a.session.Resolving() {
		return "(signing in...)"
	}
	if identity := a.session.Identity(); identity != nil {
		return fmt.Sprintf("(%s)", identity.Email)
	}
	return ""
}

// Root prints the banner and runs the REPL over stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to LearningX CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
