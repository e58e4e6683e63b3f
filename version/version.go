package version

// APP_VERSION is overridden at build time with -ldflags "-X".
var APP_VERSION = "0.1.0-dev"
