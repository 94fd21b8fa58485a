// SPDX-License-Identifier: MPL-2.0

package runconfig

import (
	"testing"
)

func TestTransferState_Application(t *testing.T) {
	t.Parallel()

	src := &ApplicationConfiguration{
		ConfigName:       "server",
		EntryPoint:       "./bin/server",
		Arguments:        "--port 8080",
		WorkingDirectory: "/srv",
		Env:              map[string]string{"MODE": "dev"},
		PassParentEnv:    false,
		Module:           "api",
	}
	dst := NewApplicationConfiguration("copy")
	dst.SetTemporary(true)

	if err := TransferState(src, dst); err != nil {
		t.Fatalf("TransferState() returned error: %v", err)
	}

	if dst.Name() != "copy" || !dst.IsTemporary() {
		t.Errorf("TransferState() should keep target identity, got name=%q temporary=%v", dst.Name(), dst.IsTemporary())
	}
	if dst.EntryPoint != src.EntryPoint || dst.Arguments != src.Arguments ||
		dst.WorkingDirectory != src.WorkingDirectory || dst.Module != src.Module {
		t.Errorf("TransferState() copied %+v, want settings of %+v", dst, src)
	}
	if dst.PassParentEnv {
		t.Error("TransferState() should carry an explicit false PassParentEnv")
	}
	if dst.Env["MODE"] != "dev" {
		t.Errorf("TransferState() env = %v", dst.Env)
	}

	dst.Env["MODE"] = "prod"
	if src.Env["MODE"] != "dev" {
		t.Error("TransferState() target env must not alias the source")
	}
}

func TestTransferState_Compound(t *testing.T) {
	t.Parallel()

	src := &CompoundConfiguration{ConfigName: "all", Members: []string{"api", "worker"}}
	dst := NewCompoundConfiguration("all copy")

	if err := TransferState(src, dst); err != nil {
		t.Fatalf("TransferState() returned error: %v", err)
	}
	if len(dst.Members) != 2 || dst.Members[1] != "worker" {
		t.Errorf("TransferState() members = %v", dst.Members)
	}
}

func TestTransferState_TypeMismatch(t *testing.T) {
	t.Parallel()

	if err := TransferState(NewApplicationConfiguration("a"), NewScriptConfiguration("b")); err == nil {
		t.Error("expected error when transferring between different types")
	}
}
