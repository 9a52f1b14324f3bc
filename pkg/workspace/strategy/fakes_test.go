package strategy

import (
	"context"
	"errors"

	"github.com/warchest-gg/workspace-engine/pkg/volume"
)

var errBoom = errors.New("boom")

// fakeOps is an in-memory fileops.FileOperations double. It never touches
// disk; existence of direct (non-CAS) sources is checked by the strategies
// themselves via os.Lstat, so tests that exercise that path use real
// temporary files.
type fakeOps struct {
	copyCalls     []string
	copyErr       error
	hardlinkCalls []string
	hardlinkErr   error
	symlinkCalls  []string
	symlinkErr    error
	verifyResult  bool
	verifyErr     error
	casObjects    map[string]bool
	casCopyErr    error
	casLinkErr    error
}

func (f *fakeOps) CopyFile(ctx context.Context, src, dst string) error {
	f.copyCalls = append(f.copyCalls, dst)
	return f.copyErr
}

func (f *fakeOps) CreateHardLink(ctx context.Context, dst, src string) error {
	f.hardlinkCalls = append(f.hardlinkCalls, dst)
	return f.hardlinkErr
}

func (f *fakeOps) CreateSymlink(ctx context.Context, dst, src string, allowFallback bool) error {
	f.symlinkCalls = append(f.symlinkCalls, dst)
	return f.symlinkErr
}

func (f *fakeOps) VerifyFileHash(ctx context.Context, path, expectedHex string) (bool, error) {
	return f.verifyResult, f.verifyErr
}

func (f *fakeOps) CopyFromCAS(ctx context.Context, hash, dst string) (bool, error) {
	if f.casCopyErr != nil {
		return false, f.casCopyErr
	}
	return f.casObjects[hash], nil
}

func (f *fakeOps) LinkFromCAS(ctx context.Context, hash, dst string, useHardLink bool) (bool, error) {
	if f.casLinkErr != nil {
		return false, f.casLinkErr
	}
	return f.casObjects[hash], nil
}

func (f *fakeOps) EnsureDirectoryExists(path string) error     { return nil }
func (f *fakeOps) DeleteDirectoryIfExists(path string) error   { return nil }

type fakeProber struct {
	same       bool
	volumeType volume.Type
}

func (p fakeProber) SameVolume(a, b string) bool    { return p.same }
func (p fakeProber) VolumeType(path string) volume.Type { return p.volumeType }

type fakeProbe struct{ privileged bool }

func (p fakeProbe) SymlinkPrivilege() bool { return p.privileged }
