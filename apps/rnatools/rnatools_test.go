package rnatools

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeJava writes a shell script standing in for the java executable.
func fakeJava(t *testing.T, body string) string {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	fpath := filepath.Join(t.TempDir(), "java")
	if err := os.WriteFile(fpath, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return fpath
}

func TestMCQ(t *testing.T) {
	java := fakeJava(t, `
if [ "$5" = model.pdb ] && [ "$7" = native.pdb ]; then
	echo "  12.75  "
else
	echo "wrong arguments: $@"
fi`)
	res := MCQConfig{Java: java, Jar: "mcq.jar"}.Run("native.pdb", "model.pdb")
	if res.Degraded || res.Value != 12.75 {
		t.Fatalf("Expected 12.75, got %s", res)
	}

	res = MCQConfig{Java: java, Jar: "mcq.jar"}.Run("model.pdb", "native.pdb")
	if !res.Degraded || res.Value != 0 {
		t.Fatalf("Expected a degraded result for bad output, got %s", res)
	}
}

func TestGDT(t *testing.T) {
	java := fakeJava(t, `
if [ "$3" = native.pdb ] && [ "$4" = model.pdb ]; then
	printf "model,native,GDT\nm,n,0.5\n"
else
	printf "model,native,GDT\nm,n,NaN\n"
fi`)
	res := GDTConfig{Java: java, Jar: "gdt.jar"}.Run("native.pdb", "model.pdb")
	if res.Degraded || res.Value != 0.5 {
		t.Fatalf("Expected 0.5, got %s", res)
	}

	res = GDTConfig{Java: java, Jar: "gdt.jar"}.Run("model.pdb", "native.pdb")
	if !res.Degraded || res.Value != 0 {
		t.Fatalf("Expected a degraded result for NaN, got %s", res)
	}
}

func TestGDTShortOutput(t *testing.T) {
	java := fakeJava(t, `echo "only one line"`)
	res := GDTConfig{Java: java, Jar: "gdt.jar"}.Run("a.pdb", "b.pdb")
	if !res.Degraded {
		t.Fatalf("Expected a degraded result, got %s", res)
	}
}

func TestMissingTool(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-java")
	for _, res := range []Result{
		MCQConfig{Java: missing, Jar: "mcq.jar"}.Run("a.pdb", "b.pdb"),
		GDTConfig{Java: missing, Jar: "gdt.jar"}.Run("a.pdb", "b.pdb"),
	} {
		if !res.Degraded || res.Value != 0 || len(res.Reason) == 0 {
			t.Fatalf("Expected a degraded result with a reason, got %#v", res)
		}
	}
}
