package version

// Value is stamped at build time via -ldflags "-X ...version.Value=...".
var Value = "dev"
