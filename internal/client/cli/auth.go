package cli

import (
	"context"
	"fmt"
	"os"
)

// Login prompts for credentials and starts an admin session.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		fmt.Println("Login failed:", err.Error())
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", s.Username, s.Role)
	return nil
}

// Guest starts a read-only session without credentials.
func (a *App) Guest(ctx context.Context) error {
	s, err := a.sessions.LoginGuest(ctx)
	if err != nil {
		fmt.Println("Guest login failed:", err.Error())
		return err
	}
	fmt.Printf("Browsing as %s (read-only)\n", s.Username)
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err.Error())
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	if s == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (%s), logged in at %s\n", s.Username, s.Role, s.LoginTime.Format("15:04:05"))
	return nil
}

// Status re-probes the remote mirror and prints the connection state
// together with collection sizes.
func (a *App) Status(ctx context.Context) error {
	_ = a.remote.Probe(ctx)

	if a.remote.Ready() {
		fmt.Println("Remote mirror: connected")
	} else {
		fmt.Println("Remote mirror: unavailable (working from local store)")
	}

	dossiers, err := a.dossiers.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	docs, err := a.documents.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	imgs, err := a.images.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Printf("Dossiers: %d, documents: %d, images: %d\n", len(dossiers), len(docs), len(imgs))
	return nil
}
