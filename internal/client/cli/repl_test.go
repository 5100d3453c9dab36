package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls  []string
	args   [][]string
	after  int
	output []string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }
func (f *fakeExec) Open(ctx context.Context, path string, args []string) error {
	f.record("open "+path, args)
	return nil
}
func (f *fakeExec) Newsletter(ctx context.Context, args []string) error {
	f.record("newsletter", args)
	return nil
}
func (f *fakeExec) Top(ctx context.Context, args []string) error {
	f.record("top", args)
	return nil
}
func (f *fakeExec) Category(ctx context.Context, args []string) error {
	f.record("category", args)
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error { f.record("status", nil); return nil }
func (f *fakeExec) Health(ctx context.Context) error { f.record("health", nil); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Reset(ctx context.Context) error { f.record("reset", nil); return nil }
func (f *fakeExec) afterCommand(ctx context.Context) { f.after++ }

func stubPrint(t *testing.T, f *fakeExec) {
	t.Helper()
	origPrint, origPrintln := printFn, printlnFn
	printFn = func(...any) (int, error) { return 0, nil }
	printlnFn = func(a ...any) (int, error) {
		f.output = append(f.output, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printFn, printlnFn = origPrint, origPrintln })
}

func runLines(f *fakeExec, lines ...string) {
	input := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "> " }, input)
}

func TestRunREPL_Dispatch(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	stubPrint(t, f)

	runLines(f,
		"home",
		"latest",
		"archive 2",
		"newsletter abc",
		"top 5",
		"category Cloud Native",
		"dashboard",
		"sd category=Advanced",
		"go /nowhere x",
		"status",
		"whoami",
		"health",
		"logout",
		"reset",
		"exit",
	)

	require.Equal(t, []string{
		"open /",
		"open /",
		"open /newsletters",
		"newsletter",
		"top",
		"category",
		"open /dashboard",
		"open /system-design",
		"open /nowhere",
		"status",
		"status",
		"health",
		"logout",
		"reset",
	}, f.calls)
	assert.Equal(t, []string{"2"}, f.args[2])
	assert.Equal(t, []string{"abc"}, f.args[3])
	assert.Equal(t, []string{"Cloud", "Native"}, f.args[5])
	assert.Equal(t, []string{"category=Advanced"}, f.args[7])
	assert.Equal(t, []string{"x"}, f.args[8])
	assert.Equal(t, len(f.calls), f.after)
	assert.Equal(t, "Bye!", f.output[len(f.output)-1])
}

func TestRunREPL_AnonymousCommands(t *testing.T) {
	f := &fakeExec{}
	stubPrint(t, f)

	runLines(f, "login", "subscribe ref=ABC", "unsubscribe", "admin send", "quit")

	require.Equal(t, []string{"open /login", "open /subscribe", "open /unsubscribe", "open /admin"}, f.calls)
	assert.Equal(t, []string{"ref=ABC"}, f.args[1])
	assert.Equal(t, []string{"send"}, f.args[3])
}

func TestRunREPL_Help(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		admin    bool
		want     []string
	}{
		{"anonymous", false, false, []string{helpAnonymous}},
		{"user", true, false, []string{helpUser}},
		{"admin", true, true, []string{helpUser, helpAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeExec{loggedIn: tt.loggedIn, admin: tt.admin}
			stubPrint(t, f)

			runLines(f, "help", "exit")

			assert.Equal(t, append(tt.want, "Bye!"), f.output)
			assert.Empty(t, f.calls)
		})
	}
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	f := &fakeExec{}
	stubPrint(t, f)

	runLines(f, "", "go", "frobnicate", "exit")

	assert.Empty(t, f.calls)
	assert.Contains(t, f.output, "Usage: go <path>")
	assert.Contains(t, f.output, "Unknown command: frobnicate")
}

func TestRunREPL_EOF(t *testing.T) {
	f := &fakeExec{}
	stubPrint(t, f)

	input := bufio.NewReader(strings.NewReader("health"))
	runREPL(context.Background(), f, func() string { return "> " }, input)

	assert.Equal(t, []string{"health"}, f.calls)
	assert.Equal(t, 1, f.after)
}
