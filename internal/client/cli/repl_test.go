package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args ...string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args...)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login")
	f.loggedIn = true
	f.admin = true
	return nil
}
func (f *fakeExec) Guest(ctx context.Context) error {
	f.record("guest")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout")
	f.loggedIn = false
	f.admin = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { f.record("whoami"); return nil }
func (f *fakeExec) Status(ctx context.Context) error { f.record("status"); return nil }
func (f *fakeExec) List(ctx context.Context) error   { f.record("list"); return nil }
func (f *fakeExec) Open(ctx context.Context, id string) error {
	f.record("open", id)
	return nil
}
func (f *fakeExec) Export(ctx context.Context, id string) error {
	f.record("export", id)
	return nil
}
func (f *fakeExec) AddDossier(ctx context.Context) error { f.record("add-dossier"); return nil }
func (f *fakeExec) AddDocument(ctx context.Context, dossierID string) error {
	f.record("add-document", dossierID)
	return nil
}
func (f *fakeExec) AddImage(ctx context.Context, dossierID string) error {
	f.record("add-image", dossierID)
	return nil
}
func (f *fakeExec) ImportFiles(ctx context.Context, dossierID string, paths []string) error {
	f.record("import-files", append([]string{dossierID}, paths...)...)
	return nil
}
func (f *fakeExec) EditDossier(ctx context.Context, id string) error {
	f.record("edit-dossier", id)
	return nil
}
func (f *fakeExec) EditDocument(ctx context.Context, id string) error {
	f.record("edit-document", id)
	return nil
}
func (f *fakeExec) EditImage(ctx context.Context, id string) error {
	f.record("edit-image", id)
	return nil
}
func (f *fakeExec) DeleteDossier(ctx context.Context, id string) error {
	f.record("delete-dossier", id)
	return nil
}
func (f *fakeExec) DeleteDocument(ctx context.Context, id string) error {
	f.record("delete-document", id)
	return nil
}
func (f *fakeExec) DeleteImage(ctx context.Context, id string) error {
	f.record("delete-image", id)
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add-dossier",
		"list",
		"open DOS-1",
		"add-document DOS-1",
		"import-files DOS-1 a.txt b.pdf",
		"delete-dossier DOS-1",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "add-dossier", "list", "open", "add-document", "import-files", "delete-dossier"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	joined := strings.Join(exec.args, " ")
	if !strings.Contains(joined, "DOS-1 a.txt b.pdf") {
		t.Fatalf("import-files args not passed through: %v", exec.args)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	// commands missing their required argument must not dispatch
	input := strings.NewReader(strings.Join([]string{
		"open",
		"export",
		"edit-dossier",
		"delete-image",
		"import-files DOS-1",
		"quit",
	}, "\n"))
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestMakeDocCode(t *testing.T) {
	tests := []struct {
		fileName string
		n        int
		want     string
	}{
		{"report.pdf", 1, "DOC-REPORT-1"},
		{"field notes 2024.txt", 3, "DOC-FIELDNOTES2024-3"},
		{"a-very-long-surveillance-log.txt", 2, "DOC-AVERYLONGSURVEI-2"},
		{"---.bin", 7, "DOC-FILE-7"},
	}

	for _, tt := range tests {
		if got := makeDocCode(tt.fileName, tt.n); got != tt.want {
			t.Errorf("makeDocCode(%q, %d) = %q, want %q", tt.fileName, tt.n, got, tt.want)
		}
	}
}
