package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOS(t *testing.T) {
	cases := map[string]OS{
		"Windows 10":   Windows,
		"Windows 7":    Windows,
		"Mac OS X":     OSX,
		"OSX":          OSX,
		"Darwin":       OSX,
		"Linux":        Linux,
		"SunOS":        SunOS,
		"Solaris":      SunOS,
		"AIX":          AIX,
		"HP-UX":        HPUX,
		"OS/400":       OS400,
		"os400 v7":     OS400,
		"FreeBSD":      FreeBSD,
		"OpenBSD":      OpenBSD,
		"NetBSD":       NetBSD,
		"z/OS":         ZOS,
		"os4000":       Unknown,
		"Plan9":        Unknown,
		"":             Unknown,
		"BeOS 5.0 Pro": Unknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeOS(raw), "raw os %q", raw)
	}
}

func TestNormalizeArch(t *testing.T) {
	cases := map[string]Arch{
		"amd64":     X86_64,
		"x86_64":    X86_64,
		"x86-64":    X86_64,
		"EM64T":     X86_64,
		"ia32e":     X86_64,
		"x64":       X86_64,
		"i386":      X86_32,
		"i686":      X86_32,
		"x86":       X86_32,
		"386":       X86_32,
		"ia32":      X86_32,
		"i786":      Unknown,
		"ia64":      Itanium64,
		"ia64w":     Itanium64,
		"ia64n":     Itanium32,
		"sparc":     Sparc32,
		"sparcv9":   Sparc64,
		"arm":       Arm32,
		"aarch64":   Aarch64,
		"arm64":     Aarch64,
		"mips":      Mips32,
		"mipsel":    Mipsel32,
		"mips64":    Mips64,
		"mips64el":  Mipsel64,
		"ppc":       Ppc32,
		"ppcle":     Ppcle32,
		"ppc64":     Ppc64,
		"ppc64le":   Ppcle64,
		"s390":      S390_32,
		"s390x":     S390_64,
		"riscv":     RiscV,
		"riscv64":   RiscV,
		"vax":       Unknown,
		"":          Unknown,
		"x86_64_v2": Unknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeArch(raw), "raw arch %q", raw)
	}
}

func TestClassifier(t *testing.T) {
	c := NewClassifier("Windows 10", "amd64")
	assert.Equal(t, Windows, c.OS)
	assert.Equal(t, X86_64, c.Arch)
	assert.Equal(t, "windows-x86_64", c.Classifier)
	assert.Equal(t, "windows-x86_64", c.String())
	assert.True(t, c.IsWindows())
	assert.Equal(t, ".exe", c.ExecutableSuffix())

	c = NewClassifier("Linux", "aarch64")
	assert.Equal(t, "linux-aarch_64", c.Classifier)
	assert.False(t, c.IsWindows())
	assert.Empty(t, c.ExecutableSuffix())

	c = NewClassifier("TempleOS", "z80")
	assert.Equal(t, "unknown-unknown", c.Classifier)
}

func TestDetectIsStable(t *testing.T) {
	first := Detect()
	second := Detect()
	assert.Equal(t, first, second)
	assert.Equal(t, string(first.OS)+"-"+string(first.Arch), first.Classifier)
}
