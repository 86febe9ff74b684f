package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if session, err := a.sessions.Current(context.Background()); err == nil && session != nil {
		s = fmt.Sprintf("%s/%s ", session.Username, session.Role)
	}
	if a.remote.Ready() {
		s += "online"
	} else {
		s += "local"
	}
	return "(" + s + ")"
}

// Root runs the interactive loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Classified Archive (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
