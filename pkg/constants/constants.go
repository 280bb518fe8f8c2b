// Package constants defines shared constants for the RimLoc toolkit.
package constants

// CLIName is the binary name used in user-facing help text.
const CLIName = "rimloc"

// SchemaVersion identifies the PO msgctxt grammar and JSON output shape.
// It is written into exported PO files as the X-RimLoc-Schema header.
const SchemaVersion = 1

// DefaultSourceLangDir is the language folder assumed to hold the source
// (original) strings when none is specified.
const DefaultSourceLangDir = "English"

// LanguagesDirName is the conventional folder holding per-language trees.
const LanguagesDirName = "Languages"

// KeyedDirName holds hand-authored key/value translation XML.
const KeyedDirName = "Keyed"

// DefInjectedDirName holds def-field override translation XML.
const DefInjectedDirName = "DefInjected"

// DefsDirName holds the canonical definitions with embedded English text.
const DefsDirName = "Defs"

// ImportedFileName is the fallback file for PO entries whose reference
// cannot be mapped back to a relative path under Languages.
const ImportedFileName = "_Imported.xml"

// LanguageDataRoot is the document element of translation XML files.
const LanguageDataRoot = "LanguageData"
