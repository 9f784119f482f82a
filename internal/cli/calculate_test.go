package cli

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/service/mocks"
	"github.com/agbru/fibrange/internal/testutil"
)

func newRunner(t *testing.T, cfg OutputConfig) (*mocks.MockService, Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	var out, errOut bytes.Buffer
	return svc, Runner{Service: svc, Output: cfg, Out: &out, ErrOut: &errOut}, &out, &errOut
}

func TestRunSingle(t *testing.T) {
	t.Parallel()
	svc, r, out, errOut := newRunner(t, OutputConfig{})
	svc.EXPECT().Single(gomock.Any(), uint64(10)).Return(big.NewInt(55), nil)

	if code := r.RunSingle(context.Background(), 10); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out.String() != "F(10) = 55\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(testutil.StripAnsiCodes(errOut.String()), "Computed F(10)") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRunSingleErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"limit", apperrors.NewLimitError(service.ErrMaxValueExceeded, "n", 11, 10), apperrors.ExitErrorLimit},
		{"timeout", apperrors.NewCalculationError("single", context.DeadlineExceeded), apperrors.ExitErrorTimeout},
		{"canceled", apperrors.NewCalculationError("single", context.Canceled), apperrors.ExitErrorCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, r, out, _ := newRunner(t, OutputConfig{})
			svc.EXPECT().Single(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			if code := r.RunSingle(context.Background(), 11); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
			if out.Len() != 0 {
				t.Errorf("nothing should reach stdout, got %q", out.String())
			}
		})
	}
}

func TestRunRange(t *testing.T) {
	t.Parallel()
	svc, r, out, _ := newRunner(t, OutputConfig{Quiet: true})
	svc.EXPECT().Range(gomock.Any(), uint64(3), uint64(5)).Return(bigs(2, 3, 5), nil)

	if code := r.RunRange(context.Background(), 3, 5); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out.String() != "2\n3\n5\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRunRangeInverted(t *testing.T) {
	t.Parallel()
	for _, jsonOut := range []bool{false, true} {
		svc, r, out, errOut := newRunner(t, OutputConfig{JSON: jsonOut})
		svc.EXPECT().Range(gomock.Any(), uint64(10), uint64(5)).Return([]*big.Int{}, nil)

		if code := r.RunRange(context.Background(), 10, 5); code != apperrors.ExitSuccess {
			t.Fatalf("inverted range should succeed, got %d", code)
		}
		if !strings.Contains(errOut.String(), InvalidRangeMessage) {
			t.Errorf("stderr = %q", errOut.String())
		}
		want := ""
		if jsonOut {
			want = "{\"F\":[]}\n"
		}
		if out.String() != want {
			t.Errorf("json=%v stdout = %q, want %q", jsonOut, out.String(), want)
		}
	}
}

func TestRunSingleToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "f.txt")
	svc, r, out, errOut := newRunner(t, OutputConfig{OutputFile: path})
	svc.EXPECT().Single(gomock.Any(), uint64(20)).Return(big.NewInt(6765), nil)

	if code := r.RunSingle(context.Background(), 20); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if out.Len() != 0 {
		t.Errorf("file output should not duplicate to stdout: %q", out.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "F(20) = 6765\n" {
		t.Errorf("file = %q", got)
	}
	if !strings.Contains(testutil.StripAnsiCodes(errOut.String()), "Result saved to: "+path) {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestRunSingleToUnwritablePath(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	svc, r, _, _ := newRunner(t, OutputConfig{OutputFile: filepath.Join(blocker, "out.txt")})
	svc.EXPECT().Single(gomock.Any(), gomock.Any()).Return(big.NewInt(1), nil)

	if code := r.RunSingle(context.Background(), 1); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}
