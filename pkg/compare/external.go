package compare

import (
	"bytes"
	"fmt"
	"os/exec"
)

// ExecExternal drives objdump and g-ir-inspect as external processes,
// the production External implementation. Tests substitute a fake.
type ExecExternal struct {
	ObjdumpPath     string
	TypelibDumpPath string
}

func NewExecExternal() *ExecExternal {
	return &ExecExternal{ObjdumpPath: "objdump", TypelibDumpPath: "g-ir-inspect"}
}

func (e *ExecExternal) Disassemble(path string) (string, error) {
	return run(e.ObjdumpPath, "-d", "--no-show-raw-insn", path)
}

func (e *ExecExternal) DumpTypelib(path string) (string, error) {
	return run(e.TypelibDumpPath, "--print", path)
}

func run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %v: %w: %s", name, args, err, stderr.String())
	}
	return out.String(), nil
}
