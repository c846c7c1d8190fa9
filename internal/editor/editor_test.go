package editor

import "testing"

func TestCommandSplitsArguments(t *testing.T) {
	cmd, err := Command("code --wait", "/tmp/x.yaml")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	want := []string{"code", "--wait", "/tmp/x.yaml"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for i, arg := range want {
		if cmd.Args[i] != arg {
			t.Fatalf("args[%d] = %q, want %q", i, cmd.Args[i], arg)
		}
	}
}

func TestCommandRejectsEmpty(t *testing.T) {
	if _, err := Command("   ", "/tmp/x.yaml"); err == nil {
		t.Fatalf("expected error for blank editor command")
	}
}
