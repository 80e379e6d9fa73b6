// Package platform normalizes host OS and CPU architecture names into a
// small closed vocabulary and derives the "{os}-{arch}" classifier used to
// name platform-specific artifacts.
package platform

import (
	"regexp"
	"strings"
)

// Unknown is returned for any raw value that matches no known rule.
const Unknown = "unknown"

// OS is a normalized operating system token.
type OS string

const (
	AIX     OS = "aix"
	HPUX    OS = "hpux"
	OS400   OS = "os400"
	Linux   OS = "linux"
	OSX     OS = "osx"
	FreeBSD OS = "freebsd"
	OpenBSD OS = "openbsd"
	NetBSD  OS = "netbsd"
	SunOS   OS = "sunos"
	Windows OS = "windows"
	ZOS     OS = "zos"
)

// Arch is a normalized CPU architecture token.
type Arch string

const (
	X86_64    Arch = "x86_64"
	X86_32    Arch = "x86_32"
	Itanium64 Arch = "itanium_64"
	Itanium32 Arch = "itanium_32"
	Sparc32   Arch = "sparc_32"
	Sparc64   Arch = "sparc_64"
	Arm32     Arch = "arm_32"
	Aarch64   Arch = "aarch_64"
	Mips32    Arch = "mips_32"
	Mipsel32  Arch = "mipsel_32"
	Mips64    Arch = "mips_64"
	Mipsel64  Arch = "mipsel_64"
	Ppc32     Arch = "ppc_32"
	Ppcle32   Arch = "ppcle_32"
	Ppc64     Arch = "ppc_64"
	Ppcle64   Arch = "ppcle_64"
	S390_32   Arch = "s390_32"
	S390_64   Arch = "s390_64"
	RiscV     Arch = "riscv"
)

// Classifier is the immutable (os, arch, classifier) triple for one host.
type Classifier struct {
	OS         OS
	Arch       Arch
	Classifier string
}

// NewClassifier normalizes the raw OS and arch names.
func NewClassifier(rawOS, rawArch string) Classifier {
	os := NormalizeOS(rawOS)
	arch := NormalizeArch(rawArch)
	return Classifier{OS: os, Arch: arch, Classifier: string(os) + "-" + string(arch)}
}

// IsWindows reports whether the classifier describes a Windows host.
func (c Classifier) IsWindows() bool {
	return c.OS == Windows
}

// ExecutableSuffix is the file extension native executables get on this OS.
func (c Classifier) ExecutableSuffix() string {
	if c.IsWindows() {
		return ".exe"
	}
	return ""
}

func (c Classifier) String() string {
	return c.Classifier
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func normalize(value string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(value), "")
}

type osRule struct {
	prefixes []string
	os       OS
}

// First match wins. "darwin" is the Go and uname spelling of macOS.
var osRules = []osRule{
	{[]string{"aix"}, AIX},
	{[]string{"hpux"}, HPUX},
	{[]string{"os400"}, OS400},
	{[]string{"linux"}, Linux},
	{[]string{"macosx", "osx", "darwin"}, OSX},
	{[]string{"freebsd"}, FreeBSD},
	{[]string{"openbsd"}, OpenBSD},
	{[]string{"netbsd"}, NetBSD},
	{[]string{"solaris", "sunos", "illumos"}, SunOS},
	{[]string{"windows"}, Windows},
	{[]string{"zos"}, ZOS},
}

// NormalizeOS maps a raw OS name such as "Windows 10" or "Mac OS X" to its
// canonical token, or Unknown.
func NormalizeOS(value string) OS {
	v := normalize(value)
	for _, rule := range osRules {
		for _, prefix := range rule.prefixes {
			if !strings.HasPrefix(v, prefix) {
				continue
			}
			// Avoid names such as os4000.
			if rule.os == OS400 && len(v) > len(prefix) && isDigit(v[len(prefix)]) {
				continue
			}
			return rule.os
		}
	}
	return Unknown
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

type archRule struct {
	pattern *regexp.Regexp
	arch    Arch
}

// Raw values are normalized before matching, so "x86_64" arrives as "x8664".
var archRules = []archRule{
	{regexp.MustCompile(`^(x8664|amd64|ia32e|em64t|x64)$`), X86_64},
	{regexp.MustCompile(`^(x8632|x86|i[3-6]86|ia32|x32|386)$`), X86_32},
	{regexp.MustCompile(`^(ia64w?|itanium64)$`), Itanium64},
	{regexp.MustCompile(`^ia64n$`), Itanium32},
	{regexp.MustCompile(`^(sparc|sparc32)$`), Sparc32},
	{regexp.MustCompile(`^(sparcv9|sparc64)$`), Sparc64},
	{regexp.MustCompile(`^(arm|arm32)$`), Arm32},
	{regexp.MustCompile(`^(aarch64|arm64)$`), Aarch64},
	{regexp.MustCompile(`^(mips|mips32)$`), Mips32},
	{regexp.MustCompile(`^(mipsel|mips32el|mipsle)$`), Mipsel32},
	{regexp.MustCompile(`^mips64$`), Mips64},
	{regexp.MustCompile(`^(mips64el|mips64le)$`), Mipsel64},
	{regexp.MustCompile(`^(ppc|ppc32)$`), Ppc32},
	{regexp.MustCompile(`^(ppcle|ppc32le)$`), Ppcle32},
	{regexp.MustCompile(`^ppc64$`), Ppc64},
	{regexp.MustCompile(`^ppc64le$`), Ppcle64},
	{regexp.MustCompile(`^s390$`), S390_32},
	{regexp.MustCompile(`^s390x$`), S390_64},
	{regexp.MustCompile(`^(riscv|riscv64)$`), RiscV},
}

// NormalizeArch maps a raw architecture name such as "amd64" or "i686" to
// its canonical token, or Unknown.
func NormalizeArch(value string) Arch {
	v := normalize(value)
	for _, rule := range archRules {
		if rule.pattern.MatchString(v) {
			return rule.arch
		}
	}
	return Unknown
}
