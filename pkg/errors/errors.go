// Package errors holds the sentinel errors shared by the native-image build steps.
package errors

import "errors"

var (
	// Precondition errors 🛡️
	ErrCompilerMissing    = errors.New("❌ compiler toolchain missing")
	ErrBlankMainClass     = errors.New("❌ main class name is blank")
	ErrToolchainNotFound  = errors.New("❌ msvc is missing")
	ErrSetupScriptMissing = errors.New("❌ vcvarsall.bat is missing")

	// Process errors 🐚
	ErrProcessFailed = errors.New("❌ process exited with non-zero status")

	// Packaging errors 📦
	ErrExecutableMissing  = errors.New("❌ native executable not found")
	ErrUnsupportedFormat  = errors.New("❌ unsupported archive format")
	ErrZipEntryMissing    = errors.New("❌ entry not found in zip archive")
	ErrUnexpectedResponse = errors.New("❌ unexpected HTTP response")
)
