package cmd

// version is stamped into the health endpoint and can be overridden at
// build time with -ldflags "-X github.com/maptile/mosaic/cmd.version=...".
var version = "1.0.0"
