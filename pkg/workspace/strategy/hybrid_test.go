package strategy

import (
	"context"
	"testing"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

func TestHybridMaterializeGroupCopiesEssentialFile(t *testing.T) {
	src := writeSource(t, "hello")
	ops := &fakeOps{verifyResult: true}
	env, _ := newTestEnv(t, ops, map[string]string{"config.ini": src})

	group := groupFor("config.ini", 5)
	_, err := (&Hybrid{}).MaterializeGroup(context.Background(), env, group)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops.copyCalls) != 1 {
		t.Errorf("expected config.ini to be copied as essential, got %d copy calls", len(ops.copyCalls))
	}
	if len(ops.symlinkCalls) != 0 {
		t.Errorf("expected no symlink for an essential file")
	}
}

func TestHybridMaterializeGroupSymlinksNonEssentialFile(t *testing.T) {
	src := writeSource(t, "hello")
	ops := &fakeOps{}
	env, _ := newTestEnv(t, ops, map[string]string{"movies/cinematic.bik": src})

	group := groupFor("movies/cinematic.bik", 50*1024*1024)
	_, err := (&Hybrid{}).MaterializeGroup(context.Background(), env, group)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops.symlinkCalls) != 1 {
		t.Errorf("expected the large media file to be symlinked, got %d symlink calls", len(ops.symlinkCalls))
	}
	if len(ops.copyCalls) != 0 {
		t.Errorf("expected no copy for a non-essential file")
	}
}

func TestHybridMaterializeGroupEscalatesHashMismatchForEssentialFile(t *testing.T) {
	src := writeSource(t, "hello")
	ops := &fakeOps{verifyResult: false}
	env, _ := newTestEnv(t, ops, map[string]string{"config.ini": src})

	group := groupFor("config.ini", 5)
	group.Records[0].File.Hash = "deadbeef"
	_, err := (&Hybrid{}).MaterializeGroup(context.Background(), env, group)
	if err == nil {
		t.Fatal("expected a fatal error for an essential file's hash mismatch")
	}
}

func TestHybridMaterializeGroupHashMismatchIsWarningForNonEssentialFile(t *testing.T) {
	src := writeSource(t, "hello")
	ops := &fakeOps{verifyResult: false}
	env, _ := newTestEnv(t, ops, map[string]string{"movies/cinematic.bik": src})

	group := groupFor("movies/cinematic.bik", 50*1024*1024)
	group.Records[0].File.Hash = "deadbeef"
	outcome, err := (&Hybrid{}).MaterializeGroup(context.Background(), env, group)
	if err != nil {
		t.Fatalf("expected non-essential mismatch to be non-fatal, got error: %v", err)
	}
	if len(outcome.Issues) != 1 || outcome.Issues[0].Severity != workspace.SeverityWarning {
		t.Errorf("expected one warning issue, got %v", outcome.Issues)
	}
}

func TestHybridEstimateDiskUsageChargesFullSizeForEssentialAndOverheadForTheRest(t *testing.T) {
	groups := []*workspace.FileGroup{
		groupFor("config.ini", 100),
		groupFor("movies/cinematic.bik", 50*1024*1024),
	}
	effectiveSize := func(r workspace.Record) int64 { return r.File.Size }
	got := (&Hybrid{}).EstimateDiskUsage(groups, effectiveSize, nil)
	want := int64(100) + workspace.LinkOverheadBytes
	if got != want {
		t.Errorf("expected the essential file's size (100) plus one link-overhead charge (%d), got %d", want, got)
	}
}
