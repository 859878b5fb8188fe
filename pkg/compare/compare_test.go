package compare

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

type fakeClassifier map[string]Format

func (f fakeClassifier) Classify(path string) (Format, error) {
	return f[path], nil
}

type fakeExternal struct {
	disasm  map[string]string
	typelib map[string]string
}

func (f fakeExternal) Disassemble(path string) (string, error) {
	return f.disasm[path], nil
}

func (f fakeExternal) DumpTypelib(path string) (string, error) {
	return f.typelib[path], nil
}

func TestEqualCrossFormatMismatch(t *testing.T) {
	g := NewGomegaWithT(t)
	c := New(fakeClassifier{"a": FormatELF, "b": FormatHTML}, fakeExternal{})
	eq, err := c.Equal("a", "b")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(eq).To(BeFalse())
}

func TestEqualUnknownFormat(t *testing.T) {
	g := NewGomegaWithT(t)
	c := New(fakeClassifier{"a": FormatUnknown, "b": FormatUnknown}, fakeExternal{})
	eq, err := c.Equal("a", "b")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(eq).To(BeFalse())
}

func TestEqualELFIgnoresFilenameHeader(t *testing.T) {
	g := NewGomegaWithT(t)
	ext := fakeExternal{disasm: map[string]string{
		"a": "a:     file format elf64-x86-64\n\n<main>:\n  1000: mov eax, 0\n",
		"b": "b:     file format elf64-x86-64\n\n<main>:\n  1000: mov eax, 0\n",
	}}
	c := New(fakeClassifier{"a": FormatELF, "b": FormatELF}, ext)
	eq, err := c.Equal("a", "b")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(eq).To(BeTrue())
}

func TestEqualByteCompiledSkipsHeader(t *testing.T) {
	g := NewGomegaWithT(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pyc")
	b := filepath.Join(dir, "b.pyc")
	g.Expect(os.WriteFile(a, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9}, 0644)).To(Succeed())
	g.Expect(os.WriteFile(b, []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}, 0644)).To(Succeed())

	c := New(fakeClassifier{a: FormatByteCompiled, b: FormatByteCompiled}, fakeExternal{})
	eq, err := c.Equal(a, b)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(eq).To(BeTrue())
}

func TestEqualByteCompiledDiffersOnBody(t *testing.T) {
	g := NewGomegaWithT(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pyc")
	b := filepath.Join(dir, "b.pyc")
	g.Expect(os.WriteFile(a, []byte{1, 2, 3, 4, 5, 6, 7, 8, 1, 1, 1}, 0644)).To(Succeed())
	g.Expect(os.WriteFile(b, []byte{9, 9, 9, 9, 9, 9, 9, 9, 2, 2, 2}, 0644)).To(Succeed())

	c := New(fakeClassifier{a: FormatByteCompiled, b: FormatByteCompiled}, fakeExternal{})
	eq, err := c.Equal(a, b)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(eq).To(BeFalse())
}
