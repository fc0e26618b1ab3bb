package common

// VexVersion is the current checker/tool version string.
const VexVersion string = "0.1.0"

// VexModuleFileName is the name for vex module descriptor files.
const VexModuleFileName string = "vex-mod.toml"

// VexFileExt is the file extension for vex source files.
const VexFileExt string = ".vex"
